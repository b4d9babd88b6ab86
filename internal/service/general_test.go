package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAuthenticate(t *testing.T) {
	s := newTestService(t)

	token, err := s.Register("new@example.com", "long-enough-password", "New User")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New User", user.Name)

	loginToken, err := s.Login("new@example.com", "long-enough-password")
	require.NoError(t, err)
	again, err := s.Authenticate(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, err = s.Login("new@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrLoginPasswordDoesNotMatch)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestService(t)

	_, err := s.Register("dup@example.com", "long-enough-password", "")
	require.NoError(t, err)

	_, err = s.Register("dup@example.com", "another-password-here", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUnknownUser(t *testing.T) {
	s := newTestService(t)
	_, err := s.Login("ghost@example.com", "whatever-password")
	assert.ErrorIs(t, err, ErrLoginUserNotFound)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	s := newTestService(t)
	_, err := s.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
