package chi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/chi"
	chatjson "github.com/fwojciec/chatdown/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *chi.Server {
	t.Helper()
	return chi.NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	rec := serve(t, newServer(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Render(t *testing.T) {
	t.Parallel()

	t.Run("returns parsed document", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render", "**Plan:**\u2028- one **two**\r\nsee above")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		blocks, err := chatjson.UnmarshalDocument(rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, []chatdown.Block{
			chatdown.Heading{Text: "Plan"},
			chatdown.BulletPoint{Text: "one **two**"},
			chatdown.Paragraph{Text: "see above"},
		}, blocks)
	})

	t.Run("empty body yields empty document", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"blocks":[]}`, rec.Body.String())
	})

	t.Run("body over limit is rejected", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render", strings.Repeat("a", 1<<20+1))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "max size")
	})

	t.Run("invalid utf-8 is rejected", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render", "bad \xff byte")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "body must be UTF-8 text", errorMessage(t, rec))
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodGet, "/v1/render", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServer_RenderHTML(t *testing.T) {
	t.Parallel()

	rec := serve(t, newServer(t), http.MethodPost, "/v1/render/html", "**Plan:**\n- a <b>\n- **c**")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<h2>Plan</h2>\n<ul>\n<li>a &lt;b&gt;</li>\n<li><strong>c</strong></li>\n</ul>\n", rec.Body.String())
}

func TestServer_RenderText(t *testing.T) {
	t.Parallel()

	t.Run("renders without escape sequences", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render/text", "**Plan:**\n- one **two**\n\nclosing words")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Plan\n• one two\n\nclosing words", rec.Body.String())
	})

	t.Run("wraps to width", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, newServer(t), http.MethodPost, "/v1/render/text?width=12", "alpha beta gamma delta")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alpha beta\ngamma delta", rec.Body.String())
	})

	t.Run("invalid width", func(t *testing.T) {
		t.Parallel()

		for _, width := range []string{"abc", "-3"} {
			rec := serve(t, newServer(t), http.MethodPost, "/v1/render/text?width="+width, "text")
			assert.Equal(t, http.StatusBadRequest, rec.Code, width)
			assert.Contains(t, errorMessage(t, rec), "invalid width")
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	srv := chi.NewServer(slog.New(slog.NewJSONHandler(&buf, nil)))

	serve(t, srv, http.MethodPost, "/v1/render/text?width=abc", "text")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/v1/render/text", entry["path"])
	assert.Equal(t, float64(http.StatusBadRequest), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}
