package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"syl/internal/llm"

	"go.uber.org/zap"
)

const banner = "Chat with Syl (use 'ctrl-c' to quit)"

// Renderer turns assistant text into what is printed after the label.
type Renderer func(text string) (string, error)

type Option func(*Agent)

func WithModel(model llm.Model) Option {
	return func(a *Agent) { a.model = model }
}

func WithMaxTokens(maxTokens int) Option {
	return func(a *Agent) {
		if maxTokens > 0 {
			a.maxTokens = maxTokens
		}
	}
}

func WithOutput(out io.Writer) Option {
	return func(a *Agent) {
		if out != nil {
			a.out = out
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithRenderer(render Renderer) Option {
	return func(a *Agent) { a.render = render }
}

// Agent drives one interactive session. The transcript lives only as long
// as the Agent and is resent in full on every turn.
type Agent struct {
	client    llm.Client
	source    LineSource
	model     llm.Model
	maxTokens int
	out       io.Writer
	logger    *zap.Logger
	render    Renderer

	conversation []llm.Message
}

func NewAgent(client llm.Client, source LineSource, opts ...Option) *Agent {
	a := &Agent{
		client:    client,
		source:    source,
		model:     llm.DefaultModel,
		maxTokens: llm.DefaultMaxTokens,
		out:       os.Stdout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run reads lines until the source is exhausted. Any transport failure ends
// the run with an error; end of input ends it with nil.
func (a *Agent) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, banner)

	for turn := 1; ; turn++ {
		input, err := a.source.ReadLine(userPrompt())
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.logger.Debug("input closed", zap.Error(err))
			}
			a.logger.Debug("end of input", zap.Int("turns", turn-1))
			return nil
		}

		a.conversation = append(a.conversation, llm.Message{
			Role:    llm.RoleUser,
			Content: input,
		})

		req := llm.NewMessageRequest(a.conversation)
		req.Model = a.model
		req.MaxTokens = a.maxTokens

		a.logger.Debug("turn started", zap.Int("turn", turn), zap.Int("messages", len(req.Messages)))
		resp, err := a.client.SendMessage(ctx, req)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}

		for _, block := range resp.ContentBlocks {
			if err := a.handleBlock(block); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
		}
	}
}

func (a *Agent) handleBlock(block llm.ContentBlock) error {
	switch block.Type {
	case llm.ContentBlockText:
		a.conversation = append(a.conversation, llm.Message{
			Role:    llm.RoleAssistant,
			Content: block.Text,
		})
		text := block.Text
		if a.render != nil {
			rendered, err := a.render(text)
			if err != nil {
				return fmt.Errorf("render reply: %w", err)
			}
			text = rendered
		}
		_, err := fmt.Fprintf(a.out, "%s: %s\n", assistantLabel(), text)
		return err
	default:
		return fmt.Errorf("unsupported content block type: %s", block.Type)
	}
}

// Transcript returns a copy of the messages exchanged so far.
func (a *Agent) Transcript() []llm.Message {
	out := make([]llm.Message, len(a.conversation))
	copy(out, a.conversation)
	return out
}
