package assistant

import (
	"context"
	"strings"
	"sync"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "User"
	SenderAI   Sender = "AI"
)

// ErrorReply is appended when the runtime cannot be reached.
const ErrorReply = "Error communicating with AI."

// Message is one entry of the transcript.
type Message struct {
	Text   string
	Sender Sender
}

// Chat is an append-only transcript backed by a Generator.
type Chat struct {
	gen Generator

	mu       sync.Mutex
	messages []Message
}

// NewChat returns an empty transcript.
func NewChat(gen Generator) *Chat {
	return &Chat{gen: gen}
}

// Submit records input as a user message. It returns false and records
// nothing when input is blank after trimming.
func (c *Chat) Submit(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	c.append(Message{Text: input, Sender: SenderUser})
	return true
}

// Reply asks the generator about prompt and appends its answer, or
// ErrorReply on failure. The appended message is returned.
func (c *Chat) Reply(ctx context.Context, prompt string) (Message, error) {
	text, err := c.gen.Generate(ctx, prompt)
	msg := Message{Text: text, Sender: SenderAI}
	if err != nil {
		msg.Text = ErrorReply
	}
	c.append(msg)
	return msg, err
}

// Send is Submit followed by Reply. Blank input is ignored.
func (c *Chat) Send(ctx context.Context, input string) (Message, bool, error) {
	if !c.Submit(input) {
		return Message{}, false, nil
	}
	msg, err := c.Reply(ctx, input)
	return msg, true, err
}

// Messages returns a copy of the transcript.
func (c *Chat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Chat) append(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
}
