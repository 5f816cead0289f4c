// ABOUTME: AI cost-assistant endpoints on the primary backend
// ABOUTME: Transcript history and streaming chat

package api

import "context"

// ChatMessage is one turn of the assistant transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// AssistantHistory fetches the stored transcript via GET /assistant/history.
func (c *Client) AssistantHistory(ctx context.Context) ([]ChatMessage, error) {
	var history []ChatMessage
	if err := c.Get(ctx, "/assistant/history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AskAssistant sends a question via POST /assistant/chat and streams the
// response incrementally through onChunk. Cancel ctx to abort; no chunk is
// delivered after cancellation.
func (c *Client) AskAssistant(ctx context.Context, message string, onChunk func(chunk string) error) error {
	return c.Stream(ctx, "/assistant/chat", chatRequest{Message: message}, onChunk)
}
