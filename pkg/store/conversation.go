package store

import "github.com/google/uuid"

const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// Message is one chat bubble of the assistant conversation.
type Message struct {
	Id     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Conversation holds the ordered transcript with the assistant plus the
// send-state for the current exchange. Messages are append-only; only
// Clear replaces the transcript wholesale.
type Conversation struct {
	Messages      []Message `json:"messages"`
	ChatSessionId string    `json:"chatSessionId"`
	AiChatInput   string    `json:"aiChatInput"`
	IsSending     bool      `json:"isSending"`
	Error         string    `json:"error,omitempty"`
}

func NewConversation(greeting string) *Conversation {
	return &Conversation{
		Messages: []Message{seedGreeting(greeting)},
	}
}

func seedGreeting(greeting string) Message {
	return Message{Id: uuid.NewString(), Sender: SenderSystem, Text: greeting}
}

func (c *Conversation) AppendMessage(sender, text string) Message {
	msg := Message{Id: uuid.NewString(), Sender: sender, Text: text}
	c.Messages = append(c.Messages, msg)
	return msg
}

func (c *Conversation) SetInput(text string) {
	c.AiChatInput = text
}

// BeginSend marks an assistant exchange as in flight and clears any error
// from a previous turn.
func (c *Conversation) BeginSend() {
	c.IsSending = true
	c.Error = ""
}

// CompleteSend records the assistant reply and adopts newSessionId when it
// is non-empty and differs from the current one. Returns true when the
// session id changed so the caller can persist it.
func (c *Conversation) CompleteSend(reply, newSessionId string) bool {
	c.IsSending = false
	c.AppendMessage(SenderSystem, reply)
	if newSessionId != "" && newSessionId != c.ChatSessionId {
		c.ChatSessionId = newSessionId
		return true
	}
	return false
}

// FailSend records an assistant call failure as both state and a visible
// system message.
func (c *Conversation) FailSend(reason string) {
	c.IsSending = false
	c.Error = reason
	c.AppendMessage(SenderSystem, "Error: "+reason)
}

func (c *Conversation) SetSession(id string) {
	c.ChatSessionId = id
}

// Clear reseeds the transcript with a single system greeting under a fresh
// id. The session id is left untouched.
func (c *Conversation) Clear(greeting string) {
	c.Messages = []Message{seedGreeting(greeting)}
	c.Error = ""
}
