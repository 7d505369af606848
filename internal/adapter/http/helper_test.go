package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/adapter/lock"
	"pf-loan-generator/internal/adapter/repository/sessionstore"
	"pf-loan-generator/internal/testutil/exportmock"
	"pf-loan-generator/internal/usecase/export"
	"pf-loan-generator/internal/usecase/letter"
	"pf-loan-generator/internal/usecase/session"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newRequest(method, path string) *http.Request { return httptest.NewRequest(method, path, nil) }

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func fixedRegion(letter.Letter) (export.Region, error) {
	return &exportmock.Region{W: 640, H: 900}, nil
}

type testApp struct {
	e          *echo.Echo
	sessions   *session.Usecase
	lock       *lock.Memory
	rasterizer *exportmock.Rasterizer
	assembler  *exportmock.Assembler
	ledger     *exportmock.Ledger
}

// newTestApp wires the real routes over in-memory stores and mock
// rendering collaborators.
func newTestApp(t *testing.T, region RegionFunc) *testApp {
	t.Helper()
	if region == nil {
		region = fixedRegion
	}
	app := &testApp{
		lock:       lock.NewMemory(),
		rasterizer: &exportmock.Rasterizer{},
		assembler:  &exportmock.Assembler{PageW: 595.28, PageH: 841.89},
		ledger:     &exportmock.Ledger{},
	}
	app.sessions = session.NewUsecase(sessionstore.NewMemoryRepository(time.Hour), letter.DefaultBoilerplate()).
		WithClock(func() time.Time { return time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC) })
	pipeline := export.NewPipeline(app.rasterizer, app.assembler, app.lock,
		export.WithLedger(app.ledger), export.WithLogger(quietLogger()))

	xh := NewExportHandler(app.sessions, pipeline, region, app.ledger, quietLogger())
	ph, err := NewPageHandler(app.sessions, xh)
	if err != nil {
		t.Fatalf("NewPageHandler: %v", err)
	}
	app.e = newEchoWithValidator()
	Register(app.e, NewHandler("memory", true), NewSessionHandler(app.sessions), xh, ph)
	return app
}

func (a *testApp) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// newSession creates a session through the API and returns its id.
func (a *testApp) newSession(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/sessions", nil, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d", rec.Code)
	}
	var dto session.SessionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	return dto.ID
}
