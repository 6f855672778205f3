package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const DefaultMaxTokens = 1024

type Role uint8

const (
	RoleUser Role = iota
	RoleAssistant
)

var roleNames = map[Role]string{
	RoleUser:      "user",
	RoleAssistant: "assistant",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) MarshalJSON() ([]byte, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown role: %d", uint8(r))
	}
	return json.Marshal(name)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}
	for role, candidate := range roleNames {
		if candidate == name {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role: %q", name)
}

// Model identifies a remote model. Only the listed wire strings are valid.
type Model uint8

const (
	ClaudeSonnet4 Model = iota
	ClaudeOpus4
	ClaudeSonnet37
	ClaudeHaiku35
)

const DefaultModel = ClaudeSonnet4

var modelNames = map[Model]string{
	ClaudeOpus4:    "claude-opus-4-20250514",
	ClaudeSonnet4:  "claude-sonnet-4-20250514",
	ClaudeSonnet37: "claude-3-7-sonnet-20250219",
	ClaudeHaiku35:  "claude-3-5-haiku-20241022",
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

func (m Model) MarshalJSON() ([]byte, error) {
	name, ok := modelNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown model: %d", uint8(m))
	}
	return json.Marshal(name)
}

// ParseModel maps a wire string back to its Model.
func ParseModel(name string) (Model, error) {
	for model, candidate := range modelNames {
		if candidate == name {
			return model, nil
		}
	}
	return 0, fmt.Errorf("unknown model: %q", name)
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type MessageRequest struct {
	Model     Model     `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// NewMessageRequest builds a request carrying a copy of the whole transcript.
func NewMessageRequest(messages []Message) MessageRequest {
	copied := make([]Message, len(messages))
	copy(copied, messages)
	return MessageRequest{
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
		Messages:  copied,
	}
}

type ContentBlockType uint8

const (
	ContentBlockText ContentBlockType = iota
)

func (t ContentBlockType) String() string {
	switch t {
	case ContentBlockText:
		return "text"
	default:
		return fmt.Sprintf("ContentBlockType(%d)", uint8(t))
	}
}

func (t ContentBlockType) MarshalJSON() ([]byte, error) {
	if t != ContentBlockText {
		return nil, fmt.Errorf("unknown content block type: %d", uint8(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON rejects every discriminator except "text" so that a reply
// carrying an unsupported block fails instead of being dropped.
func (t *ContentBlockType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode content block type: %w", err)
	}
	switch name {
	case "text":
		*t = ContentBlockText
		return nil
	default:
		return fmt.Errorf("unsupported content block type: %q", name)
	}
}

type ContentBlock struct {
	Type ContentBlockType `json:"type"`
	Text string           `json:"text"`
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type *ContentBlockType `json:"type"`
		Text *string           `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return errors.New("content block is missing type")
	}
	if raw.Text == nil {
		return fmt.Errorf("%s content block is missing text", *raw.Type)
	}
	b.Type = *raw.Type
	b.Text = *raw.Text
	return nil
}

type MessageResponse struct {
	ContentBlocks []ContentBlock `json:"content"`
}

func (r *MessageResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Content *[]ContentBlock `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Content == nil {
		return errors.New("response is missing content")
	}
	r.ContentBlocks = *raw.Content
	return nil
}

type Client interface {
	SendMessage(ctx context.Context, req MessageRequest) (MessageResponse, error)
}
