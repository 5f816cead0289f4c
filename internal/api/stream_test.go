// ABOUTME: Tests for streaming responses
// ABOUTME: Verifies chunk ordering, abort semantics, and mid-stream failures

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStream_EventStreamChunksInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: Hel\n\n"))
		w.Write([]byte("data: lo\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})

	var got strings.Builder
	err := c.Stream(context.Background(), "/assistant/chat", map[string]string{"message": "hi"}, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "Hello" {
		t.Errorf("expected chunks to assemble to 'Hello', got %q", got.String())
	}
}

func TestStream_RawChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("raw response body"))
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})

	var got strings.Builder
	err := c.Stream(context.Background(), "/assistant/chat", nil, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "raw response body" {
		t.Errorf("unexpected body: %q", got.String())
	}
}

func TestStream_NoChunksAfterAbort(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		w.Write([]byte("data: first\n\n"))
		flusher.Flush()

		// Hold the stream open until the client has canceled
		<-release
		w.Write([]byte("data: second\n\n"))
		flusher.Flush()
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})
	ctx, cancel := context.WithCancel(context.Background())

	var chunks []string
	err := c.Stream(ctx, "/assistant/chat", nil, func(chunk string) error {
		chunks = append(chunks, chunk)
		cancel()
		close(release)
		return nil
	})

	if err == nil {
		t.Fatal("expected error after abort, got nil")
	}
	if len(chunks) != 1 || chunks[0] != "first" {
		t.Errorf("expected exactly the pre-abort chunk, got %v", chunks)
	}
}

func TestStream_MidStreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are sent so the client sees a broken stream
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("partial"))
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})

	var got strings.Builder
	err := c.Stream(context.Background(), "/assistant/chat", nil, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	if err == nil {
		t.Fatal("expected mid-stream error, got nil")
	}
	if !strings.Contains(err.Error(), "stream interrupted") {
		t.Errorf("expected 'stream interrupted' error, got %v", err)
	}
	if got.String() != "partial" {
		t.Errorf("expected delivered chunks to be kept, got %q", got.String())
	}
}

func TestStream_ErrorStatusBeforeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})

	called := false
	err := c.Stream(context.Background(), "/assistant/chat", nil, func(chunk string) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if called {
		t.Error("onChunk must not be called for an error response")
	}
}

func TestStream_CanceledBeforeStart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte("data: late\n\n"))
	}))
	defer server.Close()

	c := New(singleOriginTable(server.URL), &memTokens{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := c.Stream(ctx, "/assistant/chat", nil, func(chunk string) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if called {
		t.Error("onChunk must not be called after cancellation")
	}
}
