package ui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"gotips/adapters/excel"
	"gotips/adapters/tipsdata"
	"gotips/internal/analysis"
	"gotips/internal/config"
	"gotips/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8080", GinMode: "test"},
		Session:   config.SessionConfig{CookieName: "gotips_session", TTL: time.Hour},
		Dashboard: config.DashboardConfig{TopN: 10, HistogramBins: 20},
		LogLevel:  "ERROR",
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	preparer := dataset.NewPreparer(tipsdata.NewEmbeddedSource(), nil)
	// templates and static files are read from the module root
	s, err := NewServer(testConfig(), preparer, os.DirFS(".."), nil)
	require.NoError(t, err)
	return s
}

func do(s *Server, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "gotips_session" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestIndex_RendersDashboard(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Tip Behaviour Analysis")
	assert.Contains(t, body, "<strong>244</strong>")
	assert.Contains(t, body, "$4,827.77")
	assert.Contains(t, body, "<strong>Insight:</strong> Male accounts for 64.3% of customers")
	assert.Contains(t, body, "window.TIPS_SNAPSHOT")
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestIndex_SelectionIsRememberedPerSession(t *testing.T) {
	s := newTestServer(t)

	first := do(s, "/?applied=1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "No records match")
	cookie := sessionCookie(t, first)

	again := do(s, "/", cookie)
	assert.Contains(t, again.Body.String(), "No records match")

	other := do(s, "/")
	assert.NotContains(t, other.Body.String(), "No records match")

	narrowed := do(s, "/?applied=1&day=Fri&time=Lunch&time=Dinner", cookie)
	assert.Contains(t, narrowed.Body.String(), "<strong>19</strong>")

	rec := do(s, "/api/snapshot", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(19), gjson.Get(rec.Body.String(), "metrics.count").Int())
}

func TestIndex_InvalidSelection(t *testing.T) {
	rec := do(newTestServer(t), "/?day=Mon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", gjson.Get(rec.Body.String(), "code").String())
}

func TestExport(t *testing.T) {
	rec := do(newTestServer(t), "/export.xlsx?applied=1&day=Sat&time=Dinner")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "tips.xlsx"))

	data, err := excel.NewDataReader("tips.xlsx").ReadBytes(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, data.Rows, 87)
}

func TestHealthAndStatic(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", gjson.Get(rec.Body.String(), "status").String())

	rec = do(s, "/static/js/dashboard.js")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderMarkdown(t *testing.T) {
	out := string(renderMarkdown("**Insight:** Dinner wins"))
	assert.Contains(t, out, "<strong>Insight:</strong> Dinner wins")
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "4,827.77", grouped("%.2f", 4827.77))
	assert.Equal(t, "1,234,567.89", grouped("%.2f", 1234567.891))
	assert.Equal(t, "999.00", grouped("%.2f", 999.0))
	assert.Equal(t, "-1,000.00", grouped("%.2f", -1000.0))
	assert.Equal(t, "1,234", grouped("%d", 1234))
	assert.Equal(t, "244", grouped("%d", 244))
}

func TestTemplateFuncs_Grouping(t *testing.T) {
	funcs := templateFuncs()
	money := funcs["money"].(func(analysis.Metric) string)
	count := funcs["count"].(func(int) string)

	assert.Equal(t, "$4,827.77", money(analysis.Defined(4827.77)))
	assert.Equal(t, "n/a", money(analysis.Undefined))
	assert.Equal(t, "12,345", count(12345))
}
