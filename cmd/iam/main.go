package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/config"
	"github.com/post-hub/iam-service/internal/httpserver"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/mykafka"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/search"
	"github.com/post-hub/iam-service/internal/service"
	"github.com/post-hub/iam-service/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	store := repo.New(db)
	seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.SeedRoles(seedCtx)
	cancel()
	if err != nil {
		log.Fatalf("role seed error: %v", err)
	}

	var producer *mykafka.Producer
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		producer = mykafka.NewProducer(brokers, cfg.KafkaTopic)
		defer producer.Close()
	} else {
		logger.Warn("kafka disabled", "reason", "KAFKA_ADDRESS not set")
	}

	postSvc := &service.PostService{Repo: store, Producer: producer}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		postSvc.ES = es
	} else {
		logger.Warn("search disabled", "reason", "ES_URL not set")
	}

	codec := tokens.NewCodec(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	httpserver.Register(e, &httpserver.Deps{
		Logger: logger,
		Codec:  codec,
		Auth: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: store, Codec: codec, Producer: producer},
		},
		Posts:    &httpserver.PostHTTP{Svc: postSvc},
		Comments: &httpserver.CommentHTTP{Svc: &service.CommentService{Repo: store, Producer: producer}},
		Users:    &httpserver.UserHTTP{Svc: &service.UserService{Repo: store}},
	})

	go func() {
		if err := e.Start(cfg.HTTPAddress); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
