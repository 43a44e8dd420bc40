package routes

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/config"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/testutil"
)

type server struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	audit  *audit.Dispatcher
}

func newServer(t *testing.T, publicRead bool) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		Timezone:           "UTC",
		PublicPropertyRead: publicRead,
		MediaURL:           "/media",
		ImageMaxWidth:      64,
		ImageQuality:       70,
	}
	dispatcher := audit.NewDispatcher(audit.New(db), log)
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, db, cfg, Infra{
		Storage: storage.NewLocalStorage(t.TempDir(), cfg.MediaURL),
		Cache:   cache.NopTokenCache{},
		Audit:   dispatcher,
		Log:     log,
	})

	return &server{t: t, engine: r, db: db, audit: dispatcher}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *server) register(email, username string) (token string, id uint) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"email": email, "username": username,
		"password": "s3cret-pass", "password2": "s3cret-pass",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(s.t, w)
	user := body["user"].(map[string]any)
	return body["token"].(string), uint(user["id"].(float64))
}

func (s *server) promote(id uint) {
	s.t.Helper()
	require.NoError(s.t, s.db.Model(&models.User{}).Where("id = ?", id).Update("role", models.RoleAdmin).Error)
}

func houseBody() map[string]any {
	return map[string]any{
		"property_type": "House", "title": "Casa", "seller_name": "Joana",
		"phone_number": "555", "email": "joana@example.com", "street_address": "Rua 1",
		"city": "Porto", "state": "PT", "price": 100000, "size": "120",
		"bedrooms": 3, "bathrooms": 2, "built_year": 2010, "map": "",
	}
}

// ======================================================
// Accounts
// ======================================================

func TestAuthFlow(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("ana@example.com", "ana")

	w := s.do(http.MethodPost, "/api/login/", "", map[string]any{"email": "ana@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, decode(t, w)["token"])

	w = s.do(http.MethodPost, "/api/login/", "", map[string]any{"email": "ana@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	w = s.do(http.MethodGet, "/api/profile/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana", decode(t, w)["username"])

	w = s.do(http.MethodPost, "/api/logout/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/logout/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Errors(t *testing.T) {
	s := newServer(t, false)
	s.register("dup@example.com", "dup")

	w := s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"email": "dup@example.com", "username": "dup2",
		"password": "s3cret-pass", "password2": "s3cret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "email")

	w = s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"email": "boss@example.com", "username": "boss", "role": "ADMIN",
		"password": "s3cret-pass", "password2": "s3cret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_RequestShape(t *testing.T) {
	s := newServer(t, false)

	w := s.do(http.MethodPost, "/api/register/", "", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	for _, f := range []string{"email", "username", "password", "password2"} {
		assert.Equal(t, "This field is required.", fields[f], f)
	}

	w = s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"email": "not-an-email", "username": "bad name", "bio": strings.Repeat("b", 501),
		"date_of_birth": "31/12/1990", "password": "s3cret-pass", "password2": "s3cret-pass",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields = decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "bio")
	assert.Equal(t, "Date has wrong format. Use YYYY-MM-DD.", fields["date_of_birth"])

	// no minimum length at registration
	w = s.do(http.MethodPost, "/api/register/", "", map[string]any{
		"email": "short@example.com", "username": "short",
		"password": "abc", "password2": "abc", "date_of_birth": "",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestProfileUpdateIgnoresReadOnlyFields(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("p@example.com", "pat")

	w := s.do(http.MethodPatch, "/api/profile/update/", token, map[string]any{
		"first_name": "Patricia", "role": "ADMIN", "email": "x@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Patricia", body["first_name"])
	assert.Equal(t, "CUSTOMER", body["role"])
	assert.Equal(t, "p@example.com", body["email"])
}

func TestChangePassword(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("c@example.com", "cid")

	w := s.do(http.MethodPost, "/api/password/change/", token, map[string]any{
		"old_password": "s3cret-pass", "new_password": "brand-new-pass", "new_password_confirm": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	newToken := decode(t, w)["new_token"].(string)
	assert.NotEqual(t, token, newToken)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile/", token, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/profile/", newToken, nil).Code)
}

func TestChangePassword_TooShort(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("cs@example.com", "cass")

	w := s.do(http.MethodPost, "/api/password/change/", token, map[string]any{
		"old_password": "s3cret-pass", "new_password": "short", "new_password_confirm": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "new_password")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/profile/", token, nil).Code)
}

func TestUsersAndDeletion(t *testing.T) {
	s := newServer(t, false)
	adminToken, adminID := s.register("admin@example.com", "admin")
	userToken, _ := s.register("u@example.com", "user")
	s.promote(adminID)

	w := s.do(http.MethodGet, "/api/users/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users/1/", userToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/users/2/", adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/users/99/", adminToken, nil).Code)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/delete-user/1/", adminToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/delete-user/1/", userToken, nil).Code)

	w = s.do(http.MethodDelete, "/api/delete-user/2/", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile/", userToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/delete-user/2/", adminToken, nil).Code)
}

// ======================================================
// Properties
// ======================================================

func TestPropertyLifecycle(t *testing.T) {
	s := newServer(t, false)
	owner, _ := s.register("o@example.com", "owner")
	other, _ := s.register("x@example.com", "other")

	w := s.do(http.MethodPost, "/api/properties/", owner, houseBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "H000001", body["pid"])
	assert.Equal(t, "Pending", body["status"])
	assert.Nil(t, body["transaction_date"])
	assert.Equal(t, "100000.00", body["price"])
	assert.Equal(t, "owner", body["user"])

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/properties/", "", nil).Code)

	w = s.do(http.MethodPatch, "/api/properties/H000001/", other, map[string]any{"title": "mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/api/properties/H000001/", owner, map[string]any{"property_type": "Land"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/api/properties/H000001/", owner, map[string]any{"action": "Sold"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode(t, w)["transaction_date"])

	w = s.do(http.MethodGet, "/api/properties/sold/", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = s.do(http.MethodGet, "/api/properties/ongoing/", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/properties/H000001/", other, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/properties/H000001/", owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/properties/H000001/", owner, nil).Code)
}

func TestPropertyValidation(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("v@example.com", "val")

	body := houseBody()
	delete(body, "bedrooms")
	w := s.do(http.MethodPost, "/api/properties/", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "bedrooms")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/properties/", "", houseBody()).Code)
}

func TestPropertyRequestShape(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("rs@example.com", "shape")

	w := s.do(http.MethodPost, "/api/properties/", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	for _, f := range []string{"property_type", "title", "email", "price", "size"} {
		assert.Contains(t, fields, f)
	}

	body := houseBody()
	body["property_type"] = "Castle"
	body["email"] = "nope"
	body["map"] = "maps.example.com"
	body["action"] = "Rented"
	w = s.do(http.MethodPost, "/api/properties/", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields = decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, `"Castle" is not a valid choice.`, fields["property_type"])
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Equal(t, "Enter a valid URL.", fields["map"])
	assert.Contains(t, fields, "action")

	body = houseBody()
	body["price"] = "10.125"
	body["size"] = "12345678901234"
	w = s.do(http.MethodPost, "/api/properties/", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields = decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", fields["price"])
	assert.Contains(t, fields, "size")

	var count int64
	require.NoError(t, s.db.Model(&models.Property{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPropertyPatchNullsAndEmptyAction(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("pn@example.com", "nulls")

	body := houseBody()
	body["map"] = "https://maps.example.com/?q=41.1,-8.6"
	body["action"] = "Sold"
	w := s.do(http.MethodPost, "/api/properties/", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Active", decode(t, w)["status"])

	w = s.do(http.MethodPatch, "/api/properties/H000001/", token, map[string]any{"map": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)
	assert.Equal(t, "Pending", got["status"])
	assert.Nil(t, got["map"])

	w = s.do(http.MethodPatch, "/api/properties/H000001/", token, map[string]any{"action": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "action")

	w = s.do(http.MethodPatch, "/api/properties/H000001/", token, map[string]any{"bedrooms": nil})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "bedrooms")

	w = s.do(http.MethodGet, "/api/properties/H000001/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode(t, w)
	assert.Equal(t, "Sold", got["action"])
	assert.NotNil(t, got["transaction_date"])
	assert.Equal(t, float64(3), got["bedrooms"])
}

func TestPublicPropertyRead(t *testing.T) {
	s := newServer(t, true)
	token, _ := s.register("r@example.com", "reader")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/properties/", token, houseBody()).Code)

	w := s.do(http.MethodGet, "/api/properties/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/properties/H000001/", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/properties/", "bogus", nil).Code)
}

func TestMultipartCreateWithImages(t *testing.T) {
	s := newServer(t, false)
	token, _ := s.register("m@example.com", "multi")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"property_type": "Land", "title": "Lote", "seller_name": "Rui", "phone_number": "1",
		"email": "rui@example.com", "street_address": "Rua 2", "city": "Faro", "state": "PT",
		"price": "2500.50", "size": "300", "legal_document": "true",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	for i := 0; i < 2; i++ {
		fw, err := mw.CreateFormFile("image_files", "photo.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 80, 40))))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/properties/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "L000001", body["pid"])
	assert.Equal(t, "2500.50", body["price"])
	assert.Equal(t, true, body["legal_document"])

	images := body["images"].([]any)
	require.Len(t, images, 2)
	first := images[0].(map[string]any)
	url := first["image"].(string)
	assert.Regexp(t, `^/media/property/images/L000001_\d+\.webp$`, url)

	media := httptest.NewRecorder()
	s.engine.ServeHTTP(media, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, media.Code)

	w = s.do(http.MethodDelete, "/api/properties/L000001/images/"+jsonID(first["id"])+"/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/properties/L000001/", token, nil)
	assert.Len(t, decode(t, w)["images"], 1)
}

func jsonID(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// ======================================================
// Audit
// ======================================================

func TestAuditLogs(t *testing.T) {
	s := newServer(t, false)
	adminToken, adminID := s.register("a@example.com", "auditor")
	s.promote(adminID)
	userToken, _ := s.register("b@example.com", "plain")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/properties/", adminToken, houseBody()).Code)
	s.audit.Close()

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/audit-logs/", userToken, nil).Code)

	w := s.do(http.MethodGet, "/api/audit-logs/?action=property_created", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])

	w = s.do(http.MethodGet, "/api/audit-logs/?entity=user", adminToken, nil)
	assert.Equal(t, float64(2), decode(t, w)["count"])
}
