package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/adapters"
	"user_backend/internal/feature/users/domain/entity"
	userhandler "user_backend/internal/feature/users/transport/handler"
	userusecase "user_backend/internal/feature/users/usecase"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/ratelimit"
)

const testSecret = "router-test-secret"

// newTestServer wires the real usecases over an in-memory SQLite store.
// Redis is absent, so reads go straight to the store.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(jwtmw.EnvKeyJWTSecret, testSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))

	repo := adapters.NewUserMySQL(db)
	jwtGen := jwtmw.NewGenerator(testSecret, time.Hour)

	authH := authhandler.NewAuthHandler(authusecase.NewAuthUsecase(repo, jwtGen))
	userH := userhandler.NewUserHandler(userusecase.NewUserUsecase(repo))

	limiter := ratelimit.NewLimiter(60, time.Minute)
	t.Cleanup(limiter.Close)

	return NewRouter(authH, userH, limiter)
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Fallback(t *testing.T) {
	r := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/unknown"},
		{http.MethodPost, "/nowhere"},
		{http.MethodPatch, "/api/users/1"}, // PATCHは定義していない
	}

	for _, tt := range tests {
		w := do(t, r, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tt.method, tt.path)
		assert.JSONEq(t, `{"error": "Route not found"}`, w.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestServer(t)

	for _, tt := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
	} {
		w := do(t, r, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}
}

// TestRouter_RegisterLoginCRUD は登録→ログイン→取得→更新→削除の一連のフローを検証します。
func TestRouter_RegisterLoginCRUD(t *testing.T) {
	r := newTestServer(t)

	// 登録
	w := do(t, r, http.MethodPost, "/api/register", "",
		gin.H{"name": "A", "email": "a@x.com", "password": "secret1", "age": 30})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 同じメールアドレスでは登録できない
	w = do(t, r, http.MethodPost, "/api/register", "",
		gin.H{"name": "B", "email": "a@x.com", "password": "secret2", "age": 40})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var dup map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dup))
	assert.NotEmpty(t, dup["email"])

	// ログイン
	w = do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	require.NotEmpty(t, loginBody.Token)
	token := loginBody.Token

	// 間違ったパスワードでは401
	w = do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 一覧に登録ユーザーが含まれ、パスワードは含まれない
	w = do(t, r, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Users []map[string]any `json:"users"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Users, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.NotContains(t, page.Users[0], "password")

	// ID指定で取得
	w = do(t, r, http.MethodGet, "/api/users/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "A", got["name"])
	assert.NotContains(t, got, "password")

	// 名前のみ更新、メールアドレスは維持される
	w = do(t, r, http.MethodPut, "/api/users/1", token, gin.H{"name": "B"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/users/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "B", got["name"])
	assert.Equal(t, "a@x.com", got["email"])

	// 削除後は404になり、一覧からも消える
	w = do(t, r, http.MethodDelete, "/api/users/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/users/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Users)
}
