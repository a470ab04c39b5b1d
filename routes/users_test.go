package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegistrationAndLookup(t *testing.T) {
	router := newTestRouter(t)

	userID, _ := signUp(t, router, "sarah@example.com", false)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/"+userID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user struct {
		Email       string `json:"email"`
		IsTradesmen bool   `json:"isTradesmen"`
	}
	decode(t, w, &user)
	assert.Equal(t, "sarah@example.com", user.Email)
	assert.False(t, user.IsTradesmen)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/b3c7a1d0-1111-2222-3333-444444444444", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuplicateRegistrationIsConflict(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "dup@example.com", false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":     "dup@example.com",
		"firstName": "Dup",
		"lastName":  "User",
		"password":  "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailures(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "sarah@example.com", false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email":    "sarah@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":     "tokens@example.com",
		"firstName": "Token",
		"lastName":  "User",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email":    "tokens@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.RefreshToken)

	// Rotate
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refreshToken": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rotated struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	decode(t, w, &rotated)
	assert.NotEmpty(t, rotated.Token)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The old token is now rejected
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refreshToken": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes the new one
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", gin.H{
		"refreshToken": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refreshToken": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
