package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ahmad435-vlaygo/adminValygobackend/config"
	"github.com/ahmad435-vlaygo/adminValygobackend/database"
	"github.com/ahmad435-vlaygo/adminValygobackend/email"
	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	require.NoError(t, utils.InitializeJWT("test-secret-0123456789abcdef0123456789abcdef"))

	db, err := database.Initialize(":memory:")
	require.NoError(t, err)

	// A fresh pool connection would get its own empty in-memory database, so
	// pin the pool to a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{
		Environment: "test",
		FrontendURL: "http://localhost:3000",
	}
	return NewHandlers(db, cfg, email.NopMailer{})
}

func superAdminClaims() *utils.Claims {
	return &utils.Claims{UserID: 1, Email: "root@valygo.io", Role: models.RoleSuperAdmin}
}

func newRequest(t *testing.T, method, target string, body interface{}, claims *utils.Claims, vars map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(target))
}

func seedAdmin(t *testing.T, h *Handlers, name, emailAddr, password, role string) models.AdminUser {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	admin := models.AdminUser{
		Name:        name,
		Email:       emailAddr,
		Password:    hashed,
		Role:        role,
		Status:      "active",
		Permissions: models.StringList{"all"},
	}
	require.NoError(t, h.db.Create(&admin).Error)
	return admin
}

func seedUser(t *testing.T, h *Handlers, user models.User) models.User {
	t.Helper()
	require.NoError(t, h.db.Create(&user).Error)
	return user
}
