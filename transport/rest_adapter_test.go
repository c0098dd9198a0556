package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTAdapter_PostJSONSendsHeadersAndBody(t *testing.T) {
	var (
		gotMethod  string
		gotType    string
		gotSecret  string
		gotPayload map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotSecret = r.Header.Get("X-Webhook-Secret")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotPayload)
		w.Header().Set("X-Trace", "abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"m1"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	res, err := adapter.PostJSON(context.Background(), server.URL+"/send", map[string]string{
		"X-Webhook-Secret": "s3cret",
	}, map[string]string{"to": "+14155551234", "message": "hi"})
	if err != nil {
		t.Fatalf("post json: %v", err)
	}
	if !res.OK() || res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if string(res.Body) != `{"id":"m1"}` {
		t.Fatalf("unexpected body %q", res.Body)
	}
	if res.Headers["X-Trace"] != "abc" {
		t.Fatalf("expected flattened response headers, got %v", res.Headers)
	}
	if gotMethod != http.MethodPost || gotType != "application/json" || gotSecret != "s3cret" {
		t.Fatalf("unexpected request method=%q type=%q secret=%q", gotMethod, gotType, gotSecret)
	}
	if gotPayload["to"] != "+14155551234" || gotPayload["message"] != "hi" {
		t.Fatalf("unexpected payload %v", gotPayload)
	}
}

func TestRESTAdapter_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	defer server.Close()

	res, err := NewRESTAdapter(server.Client()).Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK() {
		t.Fatalf("expected non-2xx response")
	}
	if res.StatusCode != http.StatusServiceUnavailable || string(res.Body) != "down" {
		t.Fatalf("unexpected response %d %q", res.StatusCode, res.Body)
	}
}
