package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prodsum/pkg/output"
)

func newTestReport() *output.Report {
	return &output.Report{
		Files:       []string{"/data/daily_status_2024.txt", "/data/tasks.txt"},
		Summary:     "You were most focused in the mornings.",
		Path:        "/data/ai_weekly_summary.txt",
		Model:       "mistral",
		GeneratedAt: time.Now(),
		Duration:    1500 * time.Millisecond,
	}
}

func TestSend_Success(t *testing.T) {
	var gotBody []byte
	var gotAuth, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(), SendOptions{
		URL:   server.URL,
		Token: "secret",
	})

	if !resp.Success() {
		t.Fatalf("Send() failed: %v (status %d)", resp.Error, resp.StatusCode)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAgent != "prodsum-webhook" {
		t.Errorf("User-Agent = %q", gotAgent)
	}

	var n Notification
	if err := json.Unmarshal(gotBody, &n); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if n.Summary != "You were most focused in the mornings." {
		t.Errorf("Summary = %q", n.Summary)
	}
	if len(n.Files) != 2 || n.Files[0] != "daily_status_2024.txt" {
		t.Errorf("Files = %v, want basenames", n.Files)
	}
	if n.Model != "mistral" {
		t.Errorf("Model = %q", n.Model)
	}
	if n.DurationMS != 1500 {
		t.Errorf("DurationMS = %d", n.DurationMS)
	}
}

func TestSend_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header should be absent without a token")
		}
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{URL: server.URL})
	if !resp.Success() {
		t.Errorf("Send() failed: %v", resp.Error)
	}
}

func TestSend_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{URL: server.URL})
	if resp.Success() {
		t.Error("Send() should fail on 500")
	}
	if resp.Error == nil {
		t.Error("expected error for 500 status")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
}

func TestSend_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{URL: server.URL})
	if resp.Success() {
		t.Error("Send() should fail when the endpoint is down")
	}
}

func TestSend_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	start := time.Now()
	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL:     server.URL,
		Timeout: 100 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("Send() should fail on timeout")
	}
	if time.Since(start) > time.Second {
		t.Error("request was not abandoned at the timeout")
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want bool
	}{
		{"ok", Response{StatusCode: 200}, true},
		{"created", Response{StatusCode: 201}, true},
		{"redirect", Response{StatusCode: 302}, false},
		{"client error", Response{StatusCode: 404}, false},
		{"with error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}
