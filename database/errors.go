package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced to clients
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// DuplicateMessage is the client message for unique-index conflicts
const DuplicateMessage = "Duplicate field value entered"

// classifyError turns driver and GORM errors into application errors.
// resource and id only feed the not-found and invalid-id messages.
func classifyError(resource, id string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(DuplicateMessage, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperror.Error{Kind: apperror.KindBadInput, Message: "Referenced bootcamp does not exist", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.Internal("database timeout", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.Conflict(DuplicateMessage, err)
		case pgForeignKeyViolation:
			return &apperror.Error{Kind: apperror.KindBadInput, Message: "Referenced bootcamp does not exist", Err: err}
		case pgInvalidTextRepr:
			return &apperror.Error{Kind: apperror.KindInvalidID, Message: apperror.InvalidID(strings.ToLower(resource), id).Message, Err: err}
		}
	}

	return apperror.Internal(strings.ToLower(resource)+" store failure", err)
}
