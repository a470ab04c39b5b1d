package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	phone := "+447700900123"
	user, err := svc.Register(RegisterInput{
		Email:       "john@example.com",
		FirstName:   "John",
		LastName:    "Smith",
		Password:    "secret123",
		IsTradesmen: true,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsTradesmen)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	authed, err := svc.Authenticate("john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate("john@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	input := RegisterInput{
		Email:     "dup@example.com",
		FirstName: "First",
		LastName:  "User",
		Password:  "secret123",
	}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestFindByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	created := createTestUser(t, db, "findme@example.com", false)

	user, err := svc.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "findme@example.com", user.Email)

	_, err = svc.FindByID("b3c7a1d0-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
