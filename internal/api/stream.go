// ABOUTME: Streaming POST support for incremental backend responses
// ABOUTME: Delivers chunks in arrival order and stops cleanly on caller abort

package api

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stream issues a POST for the logical path and invokes onChunk for each
// piece of response data as it arrives, in arrival order. It returns once the
// stream is fully drained, or the transport error if the stream fails before
// completion. After ctx is canceled onChunk is never invoked again.
//
// Server-sent event bodies are unwrapped to their data payloads; any other
// content type is delivered as raw chunks.
func (c *Client) Stream(ctx context.Context, path string, body any, onChunk func(chunk string) error) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	emit := func(chunk string) error {
		// The transport read may have raced with cancellation; never
		// deliver a chunk after the caller aborted.
		if err := ctx.Err(); err != nil {
			return err
		}
		return onChunk(chunk)
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return readEventStream(resp.Body, emit)
	}
	return readChunks(resp.Body, emit)
}

// readEventStream delivers the data payload of each server-sent event.
func readEventStream(r io.Reader, emit func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimPrefix(line, "data:")
		data = strings.TrimPrefix(data, " ")
		if data == "[DONE]" {
			return nil
		}
		if err := emit(data); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream interrupted: %w", err)
	}
	return nil
}

// readChunks delivers the raw body in transport-sized pieces.
func readChunks(r io.Reader, emit func(string) error) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if emitErr := emit(string(buf[:n])); emitErr != nil {
				return emitErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream interrupted: %w", err)
		}
	}
}
