package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rahulm-dev/inkwell/internal/api"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiPayload struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// setupTest wires the full router against a fresh in-memory sqlite
// database. Shared cache keeps the database alive across the pooled
// connections GORM opens.
func setupTest(t *testing.T) http.Handler {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ContentItem{}))

	repositories.DB = db
	return api.SetupRouter()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodePayload(t *testing.T, rec *httptest.ResponseRecorder) apiPayload {
	t.Helper()
	var p apiPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func registrationBody(username, email string) map[string]any {
	return map[string]any{
		"username":  username,
		"email":     email,
		"password":  "Str0ngPass",
		"full_name": "Test User",
		"phone":     "9876543210",
		"address":   "12 MG Road",
		"city":      "Bengaluru",
		"state":     "Karnataka",
		"country":   "India",
		"pincode":   "560001",
	}
}

func registerAndLogin(t *testing.T, h http.Handler, username, email string) tokenPair {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", registrationBody(username, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return login(t, h, email, "Str0ngPass")
}

func login(t *testing.T, h http.Handler, email, password string) tokenPair {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Email    string    `json:"email"`
		Username string    `json:"username"`
		Tokens   tokenPair `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &data))
	require.NotEmpty(t, data.Tokens.Access)
	require.NotEmpty(t, data.Tokens.Refresh)
	return data.Tokens
}

// createAdmin inserts an admin directly; the public surface never grants
// the Admin role.
func createAdmin(t *testing.T, email string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{
		Username: "admin-" + email,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Active:   true,
	}
	require.NoError(t, repositories.DB.Create(&admin).Error)
}
