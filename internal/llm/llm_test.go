package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMessageRequestSerialization(t *testing.T) {
	request := MessageRequest{
		Model:     ClaudeSonnet4,
		MaxTokens: 1024,
		Messages:  []Message{{Role: RoleUser, Content: "Hello!"}},
	}

	data, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"model":"claude-sonnet-4-20250514"`, `"max_tokens":1024`, `"role":"user"`, `"content":"Hello!"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("unexpected fields: %s", body)
	}
}

func TestNewMessageRequestKeepsOrder(t *testing.T) {
	transcript := []Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}
	req := NewMessageRequest(transcript)
	if req.Model != DefaultModel || req.MaxTokens != DefaultMaxTokens {
		t.Fatalf("unexpected defaults: %+v", req)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Messages) != len(transcript) {
		t.Fatalf("unexpected message count: %d", len(decoded.Messages))
	}
	for i := range transcript {
		if decoded.Messages[i] != transcript[i] {
			t.Fatalf("message %d: got %+v, want %+v", i, decoded.Messages[i], transcript[i])
		}
	}

	transcript[0].Content = "changed"
	if req.Messages[0].Content != "one" {
		t.Fatalf("request shares the transcript backing array")
	}
}

func TestMessageResponseDeserialization(t *testing.T) {
	var response MessageResponse
	err := json.Unmarshal([]byte(`{
		"content": [{"type": "text", "text": "Hello! How can I help?"}]
	}`), &response)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(response.ContentBlocks) != 1 {
		t.Fatalf("unexpected block count: %d", len(response.ContentBlocks))
	}
	if response.ContentBlocks[0].Type != ContentBlockText {
		t.Fatalf("unexpected block type: %s", response.ContentBlocks[0].Type)
	}
	if response.ContentBlocks[0].Text != "Hello! How can I help?" {
		t.Fatalf("unexpected text: %q", response.ContentBlocks[0].Text)
	}
}

func TestMessageResponseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"unknown type":   `{"content":[{"type":"image","text":"x"}]}`,
		"missing type":   `{"content":[{"text":"x"}]}`,
		"missing text":   `{"content":[{"type":"text"}]}`,
		"no content":     `{"id":"msg_1"}`,
		"content object": `{"content":{"type":"text","text":"x"}}`,
	}
	for name, body := range cases {
		var response MessageResponse
		if err := json.Unmarshal([]byte(body), &response); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRoleWireStrings(t *testing.T) {
	for role, want := range map[Role]string{RoleUser: `"user"`, RoleAssistant: `"assistant"`} {
		data, err := json.Marshal(role)
		if err != nil {
			t.Fatalf("marshal %s: %v", role, err)
		}
		if string(data) != want {
			t.Fatalf("got %s, want %s", data, want)
		}
		var decoded Role
		if err := json.Unmarshal(data, &decoded); err != nil || decoded != role {
			t.Fatalf("decode %s: %v %v", data, decoded, err)
		}
	}
	var role Role
	if err := json.Unmarshal([]byte(`"system"`), &role); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if err := json.Unmarshal([]byte(`0`), &role); err == nil {
		t.Fatalf("expected error for numeric role")
	}
}

func TestParseModel(t *testing.T) {
	for _, model := range []Model{ClaudeOpus4, ClaudeSonnet4, ClaudeSonnet37, ClaudeHaiku35} {
		parsed, err := ParseModel(model.String())
		if err != nil {
			t.Fatalf("parse %s: %v", model, err)
		}
		if parsed != model {
			t.Fatalf("got %s, want %s", parsed, model)
		}
	}
	if _, err := ParseModel("claude-sonnet-3-20250514"); err == nil {
		t.Fatalf("expected error for unknown model")
	}
	if _, err := json.Marshal(Model(200)); err == nil {
		t.Fatalf("expected error for unknown model value")
	}
}
