package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "tenants_phone_key"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503"}, apperrors.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, apperrors.ErrValidation},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperrors.ErrUnavailable},
		{"connection exception", &pgconn.PgError{Code: "08006"}, apperrors.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err, "op"), tt.want)
		})
	}

	assert.NoError(t, mapError(nil, "op"))
	plain := errors.New("boom")
	assert.ErrorIs(t, mapError(plain, "op"), plain)
	assert.Contains(t, mapError(&pgconn.PgError{Code: "23505", ConstraintName: "houses_unit_number_key"}, "save house").Error(), "unit number already in use")
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("UPDATE 0"), nil, "update"), apperrors.ErrNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), nil, "update"))
}

func TestPlaceholders(t *testing.T) {
	var p placeholders
	assert.Equal(t, "", p.where())

	p.add("building_id = ?", "b-1")
	p.add("occupied = ?", true)
	limit := p.next(20)

	assert.Equal(t, " WHERE building_id = $1 AND occupied = $2", p.where())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"b-1", true, 20}, p.args)
}
