// ABOUTME: Assistant chat screen with token-by-token streamed replies
// ABOUTME: Esc cancels an in-flight stream; completed turns stay in the transcript

package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
)

type historyLoadedMsg struct {
	messages []api.ChatMessage
	err      error
}

type streamEvent struct {
	chunk string
	done  bool
	err   error
}

type streamEventMsg struct {
	ch    chan streamEvent
	event streamEvent
}

// Assistant is the chat screen.
type Assistant struct {
	client *api.Client

	messages []api.ChatMessage
	partial  strings.Builder

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	streaming bool
	cancel    context.CancelFunc

	loading bool
	errMsg  string
	width   int
	height  int
}

// New creates an assistant chat screen.
func New(client *api.Client) *Assistant {
	input := textinput.New()
	input.Placeholder = "Ask about your cloud spend..."
	input.CharLimit = 2000
	input.Focus()

	return &Assistant{client: client, input: input}
}

// Init implements tea.Model
func (a *Assistant) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadHistory())
}

func (a *Assistant) loadHistory() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		messages, err := a.client.AssistantHistory(context.Background())
		return historyLoadedMsg{messages: messages, err: err}
	}
}

// Update implements tea.Model
func (a *Assistant) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		vpHeight := msg.Height - 8
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !a.ready {
			a.viewport = viewport.New(msg.Width-4, vpHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width - 4
			a.viewport.Height = vpHeight
		}
		a.refreshTranscript()

	case historyLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.messages = msg.messages
			a.refreshTranscript()
		}

	case streamEventMsg:
		return a.handleStreamEvent(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if !a.streaming {
				text := strings.TrimSpace(a.input.Value())
				if text != "" {
					a.input.Reset()
					return a, a.send(text)
				}
			}
		case "esc":
			if a.streaming && a.cancel != nil {
				a.cancel()
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	if a.ready {
		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// Streaming reports whether a reply is currently being received.
func (a *Assistant) Streaming() bool {
	return a.streaming
}

// CancelStream aborts any in-flight reply stream. The stream goroutine sees
// the canceled context and winds down on its own.
func (a *Assistant) CancelStream() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.streaming = false
}

func (a *Assistant) send(text string) tea.Cmd {
	a.streaming = true
	a.errMsg = ""
	a.partial.Reset()
	a.messages = append(a.messages, api.ChatMessage{Role: "user", Content: text})
	a.refreshTranscript()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	ch := make(chan streamEvent, 16)
	go func() {
		err := a.client.AskAssistant(ctx, text, func(chunk string) error {
			ch <- streamEvent{chunk: chunk}
			return nil
		})
		ch <- streamEvent{done: true, err: err}
		close(ch)
	}()

	return waitForEvent(ch)
}

func waitForEvent(ch chan streamEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			event = streamEvent{done: true}
		}
		return streamEventMsg{ch: ch, event: event}
	}
}

func (a *Assistant) handleStreamEvent(msg streamEventMsg) (tea.Model, tea.Cmd) {
	if msg.event.done {
		a.streaming = false
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		if reply := a.partial.String(); reply != "" {
			a.messages = append(a.messages, api.ChatMessage{Role: "assistant", Content: reply})
		}
		a.partial.Reset()
		if err := msg.event.err; err != nil && !strings.Contains(err.Error(), "canceled") {
			a.errMsg = err.Error()
		}
		a.refreshTranscript()
		return a, nil
	}

	a.partial.WriteString(msg.event.chunk)
	a.refreshTranscript()
	return a, waitForEvent(msg.ch)
}

func (a *Assistant) refreshTranscript() {
	if !a.ready {
		return
	}

	var sb strings.Builder
	for _, m := range a.messages {
		sb.WriteString(a.renderMessage(m.Role, m.Content))
		sb.WriteString("\n\n")
	}
	if a.streaming {
		sb.WriteString(a.renderMessage("assistant", a.partial.String()+"▌"))
		sb.WriteString("\n")
	}

	a.viewport.SetContent(sb.String())
	a.viewport.GotoBottom()
}

func (a *Assistant) renderMessage(role, content string) string {
	if role == "user" {
		return styles.UserMessage.Render("You") + "\n" + content
	}
	label := fmt.Sprintf("%s Assistant", icons.Bot.String())
	return styles.UserMessage.Foreground(styles.Secondary).Render(label) + "\n" +
		styles.AssistantMessage.Render(content)
}

// View implements tea.Model
func (a *Assistant) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Assistant", icons.Bot.String())))
	sb.WriteString("\n")

	if a.loading {
		sb.WriteString(styles.Subtitle.Render("Loading conversation..."))
		sb.WriteString("\n")
	}
	if a.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(a.errMsg))
		sb.WriteString("\n")
	}

	if a.ready {
		sb.WriteString(a.viewport.View())
		sb.WriteString("\n")
	}

	sb.WriteString(a.input.View())
	sb.WriteString("\n")

	help := "enter  Send"
	if a.streaming {
		help = "esc  Stop response"
	}
	sb.WriteString(styles.Help.Render(help))

	return sb.String()
}
