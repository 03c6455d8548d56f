package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_Context(t *testing.T) {
	timeout := MapDBError(fmt.Errorf("exec: %w", context.DeadlineExceeded))
	require.True(t, IsTimeout(timeout))
	assert.Contains(t, timeout.Error(), "A operação no banco de dados expirou.")
	assert.True(t, errors.Is(timeout, context.DeadlineExceeded))

	canceled := MapDBError(fmt.Errorf("exec: %w", context.Canceled))
	require.True(t, IsCanceled(canceled))
	assert.True(t, errors.Is(canceled, context.Canceled))
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	require.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Registro não encontrado.")
}

func TestMapDBError_PgErrors(t *testing.T) {
	tests := []struct {
		name      string
		pgCode    string
		column    string
		wantCode  ErrorCode
		wantMsg   string
		wantField string
	}{
		{
			name:      "unique violation",
			pgCode:    pgerrcode.UniqueViolation,
			column:    "id",
			wantCode:  ErrCodeConflict,
			wantMsg:   "Registro duplicado.",
			wantField: "id",
		},
		{
			name:      "not null violation",
			pgCode:    pgerrcode.NotNullViolation,
			column:    "login",
			wantCode:  ErrCodeValidation,
			wantMsg:   "Campo obrigatório ausente.",
			wantField: "login",
		},
		{
			name:      "check violation",
			pgCode:    pgerrcode.CheckViolation,
			column:    "outcome",
			wantCode:  ErrCodeValidation,
			wantMsg:   "Valor inválido para o campo.",
			wantField: "outcome",
		},
		{
			name:     "anything else",
			pgCode:   pgerrcode.SerializationFailure,
			wantCode: ErrCodeInternal,
			wantMsg:  "Erro no banco de dados.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.pgCode, ColumnName: tt.column}
			err := MapDBError(fmt.Errorf("exec: %w", pgErr))

			assert.Equal(t, tt.wantCode, GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, tt.wantField, GetField(err))
			assert.True(t, errors.Is(err, pgErr))
		})
	}
}

func TestMapDBError_PassthroughUnknown(t *testing.T) {
	plain := errors.New("not a db error")
	assert.Equal(t, plain, MapDBError(plain))
}
