package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/soloadmin/admin-api/internal/api"
	"github.com/soloadmin/admin-api/internal/api/middleware"
	"github.com/soloadmin/admin-api/internal/config"
	"github.com/soloadmin/admin-api/internal/platform/blob"
	"github.com/soloadmin/admin-api/internal/platform/sqldb"
	"github.com/soloadmin/admin-api/internal/service/account"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/testdb"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// newTestRouter wires the real services on a test database and an in-memory blob store.
// Migrations share goose's global state, so callers must not run in parallel.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testdb.Open(t)
	admins := sqldb.NewAdminStore(db)
	jwtSvc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: "test-secret-that-is-long-enough-for-testing"})
	require.NoError(t, err)
	tokens := auth.NewTokenService(jwtSvc, sqldb.NewTokenStore(db), time.Hour)

	blobs := blob.NewDiskStoreFs(afero.NewBasePathFs(afero.NewMemMapFs(), "/storage"))
	accounts := account.NewService(admins, tokens, blobs,
		auth.NewBcryptHasher(bcrypt.MinCost), auth.NewBcryptVerifier(), nil)

	return api.NewRouter(api.RouterConfig{
		Accounts:     accounts,
		Gate:         middleware.NewAdminGate(tokens, admins),
		Storage:      blobs.Handler(),
		MaxBodyBytes: 8 << 20,
	})
}

type response struct {
	Code int
	Body string
}

func (r response) decode(t *testing.T) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.Body), &v), r.Body)
	return v
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return response{Code: w.Code, Body: w.Body.String()}
}

func doMultipart(t *testing.T, h http.Handler, method, path, token string, fields map[string]string, photo []byte) response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return response{Code: w.Code, Body: w.Body.String()}
}

func awa() map[string]string {
	return map[string]string{
		"nom":                   "Diop",
		"prenom":                "Awa",
		"email":                 "a@x.com",
		"telephone":             "770000000",
		"sexe":                  "feminin",
		"password":              "secret1",
		"password_confirmation": "secret1",
	}
}

func register(t *testing.T, h http.Handler) (map[string]any, string) {
	t.Helper()
	res := do(t, h, http.MethodPost, "/admin/register", "", awa())
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	body := res.decode(t)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return body["user"].(map[string]any), token
}

func TestRegisterThenRegisterAgain(t *testing.T) {
	h := newTestRouter(t)

	res := do(t, h, http.MethodPost, "/admin/register", "", awa())
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	body := res.decode(t)
	assert.Equal(t, api.MsgRegistered, body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "Diop", user["nom"])
	assert.Equal(t, "Awa", user["prenom"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "feminin", user["sexe"])
	assert.Equal(t, "admin", user["role"])
	assert.Nil(t, user["photo"])
	assert.NotContains(t, res.Body, "password")
	assert.NotContains(t, res.Body, "secret1")

	second := awa()
	second["email"] = "b@x.com"
	res = do(t, h, http.MethodPost, "/admin/register", "", second)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, api.MsgAdminExists, res.decode(t)["message"])

	res = do(t, h, http.MethodPost, "/admin/register", "", map[string]string{})
	assert.Equal(t, http.StatusForbidden, res.Code, "an existing administrator wins over validation")
}

func TestRegisterValidation(t *testing.T) {
	h := newTestRouter(t)

	res := do(t, h, http.MethodPost, "/admin/register", "", map[string]string{})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)

	errs := res.decode(t)["errors"].(map[string]any)
	for _, field := range []string{"nom", "prenom", "email", "telephone", "sexe", "password"} {
		assert.Contains(t, errs, field)
	}

	bad := awa()
	bad["sexe"] = "inconnu"
	bad["password_confirmation"] = "other1"
	res = do(t, h, http.MethodPost, "/admin/register", "", bad)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	errs = res.decode(t)["errors"].(map[string]any)
	assert.Equal(t, []any{"The selected sexe is invalid."}, errs["sexe"])
	assert.Equal(t, []any{"The password field confirmation does not match."}, errs["password"])
}

func TestRegisterMalformedBody(t *testing.T) {
	h := newTestRouter(t)

	res := do(t, h, http.MethodPost, "/admin/register", "", `{"nom":`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, api.MsgInvalidRequest, res.decode(t)["message"])
}

func TestNonStringFieldsAreValidationErrors(t *testing.T) {
	h := newTestRouter(t)

	res := do(t, h, http.MethodPost, "/admin/register", "",
		`{"nom":42,"prenom":"Awa","email":"a@x.com","telephone":"770000000","sexe":"feminin","password":"secret1","password_confirmation":"secret1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	errs := res.decode(t)["errors"].(map[string]any)
	assert.Equal(t, []any{"The nom field must be a string."}, errs["nom"])
	assert.Len(t, errs, 1)

	res = do(t, h, http.MethodPost, "/admin/login", "", `{"email":"a@x.com","password":123456}`)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	assert.Equal(t, []any{"The password field must be a string."},
		res.decode(t)["errors"].(map[string]any)["password"])

	_, token := register(t, h)

	res = do(t, h, http.MethodPut, "/admin/update", token, `{"telephone":780000000}`)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	assert.Equal(t, []any{"The telephone field must be a string."},
		res.decode(t)["errors"].(map[string]any)["telephone"])

	me := do(t, h, http.MethodGet, "/admin/me", token, nil)
	assert.Equal(t, "770000000", me.decode(t)["telephone"])

	res = do(t, h, http.MethodPost, "/admin/register", "", `{"nom":42}`)
	assert.Equal(t, http.StatusForbidden, res.Code, "an existing administrator wins over validation")
}

func TestRegisterPasswordOverBcryptLimit(t *testing.T) {
	h := newTestRouter(t)

	body := awa()
	body["password"] = strings.Repeat("p", 73)
	body["password_confirmation"] = body["password"]
	res := do(t, h, http.MethodPost, "/admin/register", "", body)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	assert.Equal(t, []any{"The password field must not be greater than 72 bytes."},
		res.decode(t)["errors"].(map[string]any)["password"])

	body["password"] = strings.Repeat("p", 72)
	body["password_confirmation"] = body["password"]
	res = do(t, h, http.MethodPost, "/admin/register", "", body)
	assert.Equal(t, http.StatusCreated, res.Code, res.Body)
}

func TestRegisterMultipartWithPhoto(t *testing.T) {
	h := newTestRouter(t)

	res := doMultipart(t, h, http.MethodPost, "/admin/register", "", awa(), pngData)
	require.Equal(t, http.StatusCreated, res.Code, res.Body)

	user := res.decode(t)["user"].(map[string]any)
	photo, _ := user["photo"].(string)
	require.True(t, strings.HasPrefix(photo, "photos/"), photo)
	assert.True(t, strings.HasSuffix(photo, ".png"), photo)

	stored := do(t, h, http.MethodGet, "/storage/"+photo, "", nil)
	assert.Equal(t, http.StatusOK, stored.Code)
	assert.Equal(t, string(pngData), stored.Body)
}

func TestRegisterMultipartRejectsNonImage(t *testing.T) {
	h := newTestRouter(t)

	res := doMultipart(t, h, http.MethodPost, "/admin/register", "", awa(), []byte("plain text, not a picture"))
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	assert.Contains(t, res.decode(t)["errors"], "photo")
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t)
	register(t, h)

	res := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	body := res.decode(t)
	assert.Equal(t, api.MsgLoggedIn, body["message"])
	assert.NotEmpty(t, body["token"])
	assert.NotContains(t, res.Body, "password")

	unknown := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "z@x.com", "password": "secret1"})
	wrong := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "a@x.com", "password": "nope!!"})
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.decode(t)["message"], wrong.decode(t)["message"])
	assert.Equal(t, api.MsgInvalidCredentials, wrong.decode(t)["message"])

	invalid := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
}

func TestGateRejectsAnonymousRequests(t *testing.T) {
	h := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/admin/me"},
		{http.MethodPut, "/admin/update"},
		{http.MethodPost, "/admin/logout"},
		{http.MethodDelete, "/admin/delete"},
	}
	for _, rt := range routes {
		res := do(t, h, rt.method, rt.path, "", nil)
		assert.Equal(t, http.StatusForbidden, res.Code, rt.path)
		assert.Equal(t, middleware.GateMessage, res.decode(t)["message"], rt.path)

		res = do(t, h, rt.method, rt.path, "forged.token.value", nil)
		assert.Equal(t, http.StatusForbidden, res.Code, rt.path)
	}
}

func TestMeAndUpdate(t *testing.T) {
	h := newTestRouter(t)
	_, token := register(t, h)

	me := do(t, h, http.MethodGet, "/admin/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code, me.Body)
	assert.Equal(t, "a@x.com", me.decode(t)["email"])
	assert.NotContains(t, me.Body, "password")

	res := do(t, h, http.MethodPut, "/admin/update", token, map[string]string{"telephone": "780000000"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	body := res.decode(t)
	assert.Equal(t, api.MsgUpdated, body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "780000000", user["telephone"])
	assert.Equal(t, "Diop", user["nom"])
	assert.Equal(t, "a@x.com", user["email"])

	res = do(t, h, http.MethodPut, "/admin/update", token, map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, res.Code, "keeping the own email is not a conflict")

	res = do(t, h, http.MethodPut, "/admin/update", token, map[string]string{"email": "broken"})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code, res.Body)
	assert.Contains(t, res.decode(t)["errors"], "email")

	res = do(t, h, http.MethodPut, "/admin/update", token, map[string]string{
		"password":              "changed1",
		"password_confirmation": "changed1",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	login := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "a@x.com", "password": "changed1"})
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestUpdateMultipartPhoto(t *testing.T) {
	h := newTestRouter(t)
	_, token := register(t, h)

	res := doMultipart(t, h, http.MethodPut, "/admin/update", token, map[string]string{"prenom": "Aminata"}, pngData)
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	user := res.decode(t)["user"].(map[string]any)
	assert.Equal(t, "Aminata", user["prenom"])
	assert.Equal(t, "Diop", user["nom"])
	first, _ := user["photo"].(string)
	require.NotEmpty(t, first)

	res = doMultipart(t, h, http.MethodPut, "/admin/update", token, nil, pngData)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	second, _ := res.decode(t)["user"].(map[string]any)["photo"].(string)
	assert.NotEqual(t, first, second)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/storage/"+first, "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/storage/"+second, "", nil).Code)
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	h := newTestRouter(t)
	_, first := register(t, h)

	login := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, login.Code)
	second := login.decode(t)["token"].(string)

	res := do(t, h, http.MethodPost, "/admin/logout", first, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, api.MsgLoggedOut, res.decode(t)["message"])

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/admin/me", first, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, "/admin/logout", first, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/admin/me", second, nil).Code)
}

func TestDeleteFreesRegistration(t *testing.T) {
	h := newTestRouter(t)
	_, token := register(t, h)

	res := do(t, h, http.MethodDelete, "/admin/delete", token, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, api.MsgDeleted, res.decode(t)["message"])

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/admin/me", token, nil).Code)

	login := do(t, h, http.MethodPost, "/admin/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, login.Code)

	register(t, h)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	res := do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "OK", res.Body)
}
