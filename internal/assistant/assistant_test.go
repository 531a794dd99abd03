package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var got generateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "Three tasks are overdue."})
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", "", time.Second)
	reply, err := c.Generate(context.Background(), "what is overdue?")
	require.NoError(t, err)

	assert.Equal(t, "Three tasks are overdue.", reply)
	assert.Equal(t, "what is overdue?", got.Prompt)
	assert.Equal(t, "syncflow:v1", got.Model)
	assert.False(t, got.Stream)
}

func TestClient_GenerateErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'syncflow:v1' not found"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, "", time.Second).Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "not found")

	_, err = NewClient("http://127.0.0.1:1", "", time.Second).Generate(context.Background(), "hi")
	assert.Error(t, err)
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestChat_Send(t *testing.T) {
	gen := &stubGenerator{reply: "hello"}
	chat := NewChat(gen)

	msg, sent, err := chat.Send(context.Background(), "hi there")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, Message{Text: "hello", Sender: SenderAI}, msg)
	assert.Equal(t, []Message{
		{Text: "hi there", Sender: SenderUser},
		{Text: "hello", Sender: SenderAI},
	}, chat.Messages())
}

func TestChat_BlankInputIgnored(t *testing.T) {
	gen := &stubGenerator{reply: "unused"}
	chat := NewChat(gen)

	_, sent, err := chat.Send(context.Background(), "   \t ")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, chat.Messages())
	assert.Zero(t, gen.calls)
}

func TestChat_FailureAppendsErrorReply(t *testing.T) {
	chat := NewChat(&stubGenerator{err: errors.New("connection refused")})

	msg, sent, err := chat.Send(context.Background(), "status?")
	assert.Error(t, err)
	assert.True(t, sent)
	assert.Equal(t, ErrorReply, msg.Text)

	msgs := chat.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Text: ErrorReply, Sender: SenderAI}, msgs[1])
}
