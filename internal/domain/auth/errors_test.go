package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginError_Messages(t *testing.T) {
	// These strings are shown verbatim on the login form and must not drift.
	assert.Equal(t, "Senha inválida!", ErrInvalidPassword.Error())
	assert.Equal(t, "Usuário não encontrado!", ErrUserNotFound.Error())
	assert.Equal(t, "Erro interno no servidor!", ErrMalformedResponse.Error())
}

func TestLoginError_IsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("login handler: %w", ErrInvalidPassword)

	assert.ErrorIs(t, wrapped, ErrInvalidPassword)
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)

	other := &LoginError{Kind: KindInvalidPassword, Message: "custom"}
	assert.ErrorIs(t, other, ErrInvalidPassword, "matching is by kind, not message")
}

func TestLoginError_As(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrUserNotFound)

	var lerr *LoginError
	require.True(t, errors.As(wrapped, &lerr))
	assert.Equal(t, KindUserNotFound, lerr.Kind)
}
