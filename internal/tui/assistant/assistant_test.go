// ABOUTME: Tests for the assistant chat screen's streaming lifecycle
// ABOUTME: Verifies that canceling a stream stops it and suppresses the abort error

package assistant

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnurajMane/web-cost/internal/api"
)

// noTokens is an anonymous token source for tests.
type noTokens struct{}

func (noTokens) Token() string { return "" }
func (noTokens) Clear() error  { return nil }

func newTestAssistant(serverURL string) *Assistant {
	client := api.New(api.NewRouteTable(serverURL, serverURL, nil), noTokens{})
	return New(client)
}

func TestCancelStream_StopsInFlightStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		w.Write([]byte("data: partial\n\n"))
		flusher.Flush()

		// Keep the stream open until the client cancels
		<-r.Context().Done()
	}))
	defer server.Close()

	a := newTestAssistant(server.URL)
	cmd := a.send("why did spend jump")

	if !a.Streaming() {
		t.Fatal("expected streaming after send")
	}

	// First event is the flushed chunk
	first := cmd().(streamEventMsg)
	if first.event.chunk != "partial" {
		t.Fatalf("expected first chunk 'partial', got %q", first.event.chunk)
	}
	updated, next := a.handleStreamEvent(first)
	a = updated.(*Assistant)

	a.CancelStream()
	if a.Streaming() {
		t.Error("expected streaming to stop after cancel")
	}

	// The goroutine winds down and delivers its final event
	done := next().(streamEventMsg)
	if !done.event.done {
		t.Fatalf("expected done event after cancel, got %+v", done.event)
	}
	a.handleStreamEvent(done)

	if a.Streaming() {
		t.Error("streaming must stay stopped after the final event")
	}
	if a.errMsg != "" {
		t.Errorf("a user-initiated abort must not surface an error, got %q", a.errMsg)
	}
}

func TestHandleStreamEvent_AssemblesReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: Spend rose \n\n"))
		w.Write([]byte("data: 12% in us-east-1.\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	a := newTestAssistant(server.URL)
	cmd := a.send("what changed")

	deadline := time.After(2 * time.Second)
	for a.Streaming() {
		select {
		case <-deadline:
			t.Fatal("stream did not finish")
		default:
		}
		msg := cmd().(streamEventMsg)
		model, next := a.handleStreamEvent(msg)
		a = model.(*Assistant)
		cmd = next
	}

	if len(a.messages) != 2 {
		t.Fatalf("expected user turn plus assistant reply, got %d messages", len(a.messages))
	}
	reply := a.messages[1]
	if reply.Role != "assistant" {
		t.Errorf("expected assistant role, got %q", reply.Role)
	}
	if reply.Content != "Spend rose 12% in us-east-1." {
		t.Errorf("unexpected assembled reply: %q", reply.Content)
	}
}
