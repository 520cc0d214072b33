package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"ideaboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStorageError_Classification(t *testing.T) {
	t.Parallel()

	t.Run("connection failure surfaces as retryable", func(t *testing.T) {
		t.Parallel()
		err := storageError(&pgconn.PgError{Code: "08006", Message: "connection failure"})
		assert.Equal(t, models.ErrCodeStorageUnavailable, err.Code)

		err = storageError(fmt.Errorf("exec: %w", driver.ErrBadConn))
		assert.Equal(t, models.ErrCodeStorageUnavailable, err.Code)
	})

	t.Run("statement failure stays internal", func(t *testing.T) {
		t.Parallel()
		err := storageError(&pgconn.PgError{Code: "42703", Message: "undefined column"})
		assert.Equal(t, models.ErrCodeInternal, err.Code)

		err = storageError(errors.New("context deadline exceeded"))
		assert.Equal(t, models.ErrCodeInternal, err.Code)
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: votes.idea_id, votes.voter_ip")))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueConstraintError(nil))
}
