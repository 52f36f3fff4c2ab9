package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/question-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", sql.ErrNoRows), wantIs: store.ErrNotFound},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), wantIs: store.ErrDuplicate},
		{name: "invalid uuid text", err: pgError(pgerrcode.InvalidTextRepresentation), wantIs: store.ErrInvalidID},
		{name: "check violation", err: pgError(pgerrcode.CheckViolation), wantIs: store.ErrInvalidEntity},
		{
			name:   "not null violation",
			err:    &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "title"},
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		orig := errors.New("connection reset")
		assert.Same(t, orig, MapError(orig))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation))))
	assert.False(t, IsUniqueViolation(pgError(pgerrcode.CheckViolation)))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
