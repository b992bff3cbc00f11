// Package repo is the gorm-backed persistence layer. All methods take a
// context and translate storage misses to the apperr taxonomy.
package repo

import (
	"crypto/rand"
	"encoding/hex"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// newTokenValue returns 32 random bytes hex-encoded: 256 bits of entropy,
// no separators.
func newTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
