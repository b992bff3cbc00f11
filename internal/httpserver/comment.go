package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/service"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

type commentRequest struct {
	PostID  uint   `json:"post_id"`
	Content string `json:"content"`
}

func (h *CommentHTTP) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	comment, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHTTP) Create(c echo.Context) error {
	claims, ok := callerClaims(c)
	if !ok {
		return httpError(apperr.ErrUnauthenticated)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.PostID == 0 || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "post_id and content required")
	}

	comment, err := h.Svc.Create(c.Request().Context(), claims, req.PostID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHTTP) Update(c echo.Context) error {
	claims, ok := callerClaims(c)
	if !ok {
		return httpError(apperr.ErrUnauthenticated)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Update(c.Request().Context(), claims, id, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHTTP) Delete(c echo.Context) error {
	claims, ok := callerClaims(c)
	if !ok {
		return httpError(apperr.ErrUnauthenticated)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), claims, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHTTP) ListByPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.QueryParam("post_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "post_id parameter required")
	}
	page, size := pageParams(c)
	res, err := h.Svc.ListByPost(c.Request().Context(), uint(postID), page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
