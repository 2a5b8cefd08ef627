package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "cards",
		ColumnName:     "front",
		ConstraintName: "cards_front_check",
	}
}

type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
		same    bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), wantIs: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), wantIs: store.ErrInvalidEntity},
		{name: "connection exception", err: newPgError("08006"), wantIs: store.ErrUnavailable},
		{name: "admin shutdown", err: newPgError("57P01"), wantIs: store.ErrUnavailable},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), wantIs: store.ErrUnavailable},
		{name: "conn done", err: sql.ErrConnDone, wantIs: store.ErrUnavailable},
		{
			name:   "network error",
			err:    &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantIs: store.ErrUnavailable,
		},
		{name: "syntax error passes through", err: newPgError("42601"), same: true},
		{name: "unknown error passes through", err: plain, same: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := postgres.MapError(tc.err)
			switch {
			case tc.wantNil:
				assert.NoError(t, got)
			case tc.same:
				assert.Same(t, tc.err, got)
			default:
				assert.ErrorIs(t, got, tc.wantIs)
				assert.Contains(t, got.Error(), tc.err.Error())
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.False(t, postgres.IsTransient(nil))
	assert.False(t, postgres.IsTransient(errors.New("boom")))
	assert.False(t, postgres.IsTransient(newPgError("23505")))
	assert.True(t, postgres.IsTransient(newPgError("08001")))
	assert.True(t, postgres.IsTransient(newPgError("57P03")))
	assert.True(t, postgres.IsTransient(context.DeadlineExceeded))
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
		check  bool
	}{
		{name: "nil", err: nil},
		{name: "generic", err: errors.New("generic")},
		{name: "unique", err: newPgError("23505"), unique: true},
		{name: "foreign key", err: newPgError("23503"), fk: true},
		{name: "check", err: fmt.Errorf("wrapped: %w", newPgError("23514")), check: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.unique, postgres.IsUniqueViolation(tc.err))
			assert.Equal(t, tc.fk, postgres.IsForeignKeyViolation(tc.err))
			assert.Equal(t, tc.check, postgres.IsCheckConstraintViolation(tc.err))
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, "deck"))
	})

	t.Run("no rows names the entity", func(t *testing.T) {
		t.Parallel()
		err := postgres.CheckRowsAffected(mockResult{}, "deck")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "deck not found")
	})

	t.Run("no rows without entity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, store.ErrNotFound, postgres.CheckRowsAffected(mockResult{}, ""))
	})

	t.Run("result error", func(t *testing.T) {
		t.Parallel()
		err := postgres.CheckRowsAffected(mockResult{err: errors.New("driver")}, "deck")
		assert.ErrorContains(t, err, "failed to get rows affected")
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, postgres.CheckRowsAffected(nil, "deck"))
	})
}
