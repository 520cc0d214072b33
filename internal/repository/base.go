package repository

import (
	"database/sql/driver"
	"errors"
	"strings"

	"ideaboard/internal/database"
	"ideaboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
// Matches the pgx SQLSTATE 23505 directly and falls back to string matching
// for the sqlite driver used in tests.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isConnectionError reports whether err is a connection-level failure
// (pgx SQLSTATE class 08 or a dead driver connection) rather than a
// statement error.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return errors.Is(err, driver.ErrBadConn)
}

// storageError wraps a DB error for callers: a lost connection surfaces as
// a retryable 503, anything else as an internal error.
func storageError(err error) *models.AppError {
	if isConnectionError(err) {
		return models.NewStorageUnavailableError(err)
	}
	return models.NewInternalError(err)
}
