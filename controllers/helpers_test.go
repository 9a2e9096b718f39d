package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/controllers"
	"github.com/meinhoongagan/servicehub/db"
	"github.com/meinhoongagan/servicehub/middleware"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/routes"
	"github.com/meinhoongagan/servicehub/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeImages struct {
	mu       sync.Mutex
	n        int
	saved    []string
	removed  []string
	failFor  map[string]bool
	saveErrs bool
}

func (f *fakeImages) Save(_ context.Context, folder, field string, _ *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErrs {
		return "", errors.New("disk full")
	}
	f.n++
	ref := fmt.Sprintf("/upload/%s/%s-%d.webp", folder, field, f.n)
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeImages) Remove(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[ref] {
		return errors.New("file busy")
	}
	f.removed = append(f.removed, ref)
	return nil
}

type fakeTokens struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (f *fakeTokens) Revoke(_ context.Context, jti string, until time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = until
	return nil
}

func (f *fakeTokens) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

type recordingNotifier struct {
	notify.Nop
	escalations []notify.TicketEscalatedEvent
}

func (r *recordingNotifier) TicketEscalated(_ context.Context, ev notify.TicketEscalatedEvent) error {
	r.escalations = append(r.escalations, ev)
	return nil
}

type testEnv struct {
	app      *fiber.App
	h        *controllers.Handler
	db       *gorm.DB
	images   *fakeImages
	tokens   *fakeTokens
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(":memory:"), gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	env := &testEnv{
		db:       gdb,
		images:   &fakeImages{failFor: map[string]bool{}},
		tokens:   &fakeTokens{revoked: map[string]time.Time{}},
		notifier: &recordingNotifier{},
	}

	h := controllers.NewHandler(gdb)
	h.Images = env.images
	h.Tokens = env.tokens
	h.Notifier = env.notifier
	h.JWTSecret = []byte("test-secret")
	h.JWTTTL = time.Hour
	env.h = h

	app := fiber.New()
	routes.Setup(app, h, middleware.Protected(h.JWTSecret, h.Users, env.tokens))
	env.app = app
	return env
}

// user stores a user with the given password and returns it.
func (e *testEnv) user(t *testing.T, name, role, password string) *models.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "0123456789",
		Password: hashed,
		Role:     role,
		City:     "Pune",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, _, err := utils.IssueToken(e.h.JWTSecret, u, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) create(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, e.db.Create(v).Error)
}

// do sends a JSON request and decodes the JSON reply into out when non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string, out interface{}) int {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(t, req, token, out)
}

// doMultipart sends fields plus files under fileField.
func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, fileField string, files map[string][]byte, token string, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		part, err := w.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.send(t, req, token, out)
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string, out interface{}) int {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

type errorBody struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func (b errorBody) message() string {
	var s string
	_ = json.Unmarshal(b.Error, &s)
	return s
}

type pageBody struct {
	Success     bool              `json:"success"`
	TotalItems  int64             `json:"totalItems"`
	Data        []json.RawMessage `json:"data"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func utoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
