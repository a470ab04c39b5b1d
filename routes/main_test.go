package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradesman-handy-server/config"
	"tradesman-handy-server/database"
	"tradesman-handy-server/middleware"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Load()
	os.Exit(m.Run())
}

// newTestRouter wires the real route tree and middleware over an in-memory
// database. Rate limiting is left out so tests can hammer the API.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	Init(db)

	router := gin.New()
	api := router.Group("/api/v1")

	userRoutes := api.Group("/users")
	RegisterUserRoutes(userRoutes)

	authRoutes := api.Group("/auth")
	RegisterAuthRoutes(authRoutes)

	bookingRoutes := api.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware())
	RegisterBookingRoutes(bookingRoutes)

	devRoutes := api.Group("/bookings")
	RegisterBookingAdminRoutes(devRoutes)

	return router
}

// doJSON issues a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// signUp registers a user and logs them in, returning the user id and token
func signUp(t *testing.T, router *gin.Engine, email string, isTradesman bool) (string, string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":       email,
		"firstName":   "Test",
		"lastName":    "User",
		"password":    "secret123",
		"isTradesmen": isTradesman,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("sign up failed: %d %s", w.Code, w.Body.String())
	}
	var user struct {
		ID string `json:"id"`
	}
	decode(t, w, &user)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	return user.ID, login.Token
}
