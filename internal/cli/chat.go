package cli

import (
	"os"

	"syl/internal/chat"
	"syl/internal/config"
	"syl/internal/llm"
	"syl/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const markdownWidth = 80

type session struct {
	cfg    config.AnthropicConfig
	client llm.Client
	logger *zap.Logger
}

// newSession loads configuration and builds the client. It fails before any
// network call when the API key is missing.
func newSession(opts *Options) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return nil, err
	}
	logger = logging.WithSession(logger)

	client, err := llm.NewAnthropicClient(llm.AnthropicConfig{
		BaseURL: cfg.Anthropic.URL,
		Token:   cfg.Anthropic.APIKey,
		Version: cfg.Anthropic.Version,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg.Anthropic, client: client, logger: logger}, nil
}

func runChat(cmd *cobra.Command, opts *Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	agentOpts := []chat.Option{
		chat.WithModel(s.cfg.ResolveModel()),
		chat.WithMaxTokens(s.cfg.MaxTokens),
		chat.WithOutput(cmd.OutOrStdout()),
		chat.WithLogger(s.logger),
	}
	if opts.Markdown {
		render, err := chat.MarkdownRenderer(markdownWidth)
		if err != nil {
			return err
		}
		agentOpts = append(agentOpts, chat.WithRenderer(render))
	}

	var source chat.LineSource
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		liner := chat.NewLinerSource()
		defer liner.Close()
		source = liner
	} else {
		source = chat.NewScannerSource(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return chat.NewAgent(s.client, source, agentOpts...).Run(cmd.Context())
}
