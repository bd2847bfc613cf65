package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`{"id":1}`), `W/"abc"`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for header, want := range map[string]string{
		"Content-Type":  "application/json",
		"ETag":          `W/"abc"`,
		"Cache-Control": "no-cache",
		"Vary":          "Accept-Encoding",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Errorf("unexpected X-Cache header %q", rec.Header().Get("X-Cache"))
	}
	if rec.Body.String() != `{"id":1}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestWriteNotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotModified(rec, `W/"abc"`)

	if rec.Code != http.StatusNotModified || rec.Header().Get("ETag") != `W/"abc"` {
		t.Fatalf("status/etag = %d/%q", rec.Code, rec.Header().Get("ETag"))
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusBadRequest, "INVALID_QUERY", "bad", "more")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "INVALID_QUERY" || resp.Error.Message != "bad" || resp.Error.Detail != "more" {
		t.Errorf("error = %+v", resp.Error)
	}
}
