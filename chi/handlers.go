package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/goldmark"
	chatjson "github.com/fwojciec/chatdown/json"
	"github.com/fwojciec/chatdown/markdown"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}
	data, err := chatjson.MarshalDocument(chatdown.Parse(source))
	if err != nil {
		s.log.Error("marshal document", "error", err)
		jsonError(w, "failed to render document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}
	data, err := goldmark.HTML(chatdown.Parse(source))
	if err != nil {
		s.log.Error("render html", "error", err)
		jsonError(w, "failed to render document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleRenderText(w http.ResponseWriter, r *http.Request) {
	width := 0
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, fmt.Sprintf("invalid width %q", v), http.StatusBadRequest)
			return
		}
		width = n
	}
	source, ok := readSource(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, markdown.Plain(source, width))
}

// readSource reads the request body as source text. On failure it writes the
// error response and returns false.
func readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", maxBodyBytes), http.StatusRequestEntityTooLarge)
			return "", false
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return "", false
	}
	if !utf8.Valid(data) {
		jsonError(w, "body must be UTF-8 text", http.StatusBadRequest)
		return "", false
	}
	return string(data), true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
