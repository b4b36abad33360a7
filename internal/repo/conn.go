package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// WithConn acquires one dedicated connection from the pool, runs fn on it,
// and returns the connection to the pool afterwards.
//
// A failure to obtain the connection is reported as a pool error; errors
// returned by fn pass through untouched.
func WithConn(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	if db == nil {
		return domain.PoolError(gorm.ErrInvalidDB)
	}
	acquired := false
	err := db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		acquired = true
		return fn(conn)
	})
	if err != nil && !acquired {
		return domain.PoolError(err)
	}
	return err
}
