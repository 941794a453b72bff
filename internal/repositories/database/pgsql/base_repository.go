package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "failed to begin transaction", fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err))
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusServiceUnavailable, "failed to commit transaction", mapError(err, "commit"))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// mapError translates driver errors into the application sentinels, keeping
// the original error in the message.
func mapError(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", action, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w: %s", action, apperrors.ErrDuplicate, constraintLabel(pgErr.ConstraintName))
		case pgErr.Code == "23503":
			return fmt.Errorf("%s: %w: referenced record does not exist", action, apperrors.ErrNotFound)
		case pgErr.Code == "23514" || pgErr.Code == "22001" || pgErr.Code == "22003":
			return fmt.Errorf("%s: %w: %s", action, apperrors.ErrValidation, pgErr.Message)
		case pgErr.Code == "40001" || pgErr.Code == "40P01" || pgErr.Code == "55P03" || pgErr.Code == "57P01":
			return fmt.Errorf("%s: %w: %s", action, apperrors.ErrUnavailable, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%s: %w: %s", action, apperrors.ErrUnavailable, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", action, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s: %w: %v", action, apperrors.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// constraintLabel turns a unique constraint name into a readable field hint.
func constraintLabel(name string) string {
	switch name {
	case "houses_unit_number_key":
		return "unit number already in use"
	case "tenants_phone_key":
		return "phone already registered"
	case "tenants_id_number_key":
		return "id number already registered"
	case "payments_tenant_month_key":
		return "payment for this month already exists"
	}
	return name
}

// expectOne converts a zero-row write into ErrNotFound.
func expectOne(tag pgconn.CommandTag, err error, action string) error {
	if err != nil {
		return mapError(err, action)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", action, apperrors.ErrNotFound)
	}
	return nil
}

// placeholders builds WHERE clauses with numbered arguments.
type placeholders struct {
	conds []string
	args  []any
}

func (p *placeholders) add(cond string, arg any) {
	p.args = append(p.args, arg)
	p.conds = append(p.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(p.args))))
}

// next reserves the next argument number.
func (p *placeholders) next(arg any) string {
	p.args = append(p.args, arg)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *placeholders) where() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}
