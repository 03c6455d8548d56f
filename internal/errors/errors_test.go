package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := NotFound("Registro não encontrado.")
	assert.Equal(t, "Registro não encontrado.", plain.Error())

	cause := errors.New("connection reset")
	wrapped := Wrap(cause, ErrCodeInternal, "Erro no banco de dados.")
	assert.Equal(t, "Erro no banco de dados.: connection reset", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "internal")

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"NotFound", NotFound("x"), ErrCodeNotFound},
		{"NotFoundf", NotFoundf("x %d", 1), ErrCodeNotFound},
		{"Conflict", Conflict("x"), ErrCodeConflict},
		{"Validation", Validation("x"), ErrCodeValidation},
		{"Validationf", Validationf("x %d", 1), ErrCodeValidation},
		{"Internal", Internal("x"), ErrCodeInternal},
		{"Internalf", Internalf("x %d", 1), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("login", "Campo obrigatório ausente.")
	assert.Equal(t, ErrCodeValidation, err.Code)
	assert.Equal(t, "login", err.Field)
	assert.Equal(t, "login", GetField(err))
}

func TestIsCodeCheckers(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsValidation(Validation("x")))
	assert.True(t, IsInternal(Internal("x")))
	assert.True(t, IsTimeout(&AppError{Code: ErrCodeTimeout}))
	assert.True(t, IsCanceled(&AppError{Code: ErrCodeCanceled}))

	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestIsCodeCheckers_WrappedChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("inner"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, ErrCodeNotFound, GetCode(err))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
