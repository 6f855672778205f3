package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"syl/internal/llm"

	"github.com/spf13/cobra"
)

type askOptions struct {
	InputFile string
}

func newAskCmd(root *Options) *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Send a single message and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.InputFile, "file", "F", "", "message file, use -F- for stdin")
	return cmd
}

func runAsk(cmd *cobra.Command, root *Options, opts *askOptions, args []string) error {
	input, err := readInput(args, opts.InputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input is required")
	}

	s, err := newSession(root)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	req := llm.NewMessageRequest([]llm.Message{{Role: llm.RoleUser, Content: input}})
	req.Model = s.cfg.ResolveModel()
	if s.cfg.MaxTokens > 0 {
		req.MaxTokens = s.cfg.MaxTokens
	}

	resp, err := s.client.SendMessage(cmd.Context(), req)
	if err != nil {
		return err
	}
	for _, block := range resp.ContentBlocks {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), block.Text); err != nil {
			return err
		}
	}
	return nil
}

func readInput(args []string, inputFile string, stdin io.Reader) (string, error) {
	if inputFile != "" && len(args) > 0 {
		return "", fmt.Errorf("input args and -F are mutually exclusive")
	}
	if inputFile == "" {
		if len(args) == 0 {
			return "", fmt.Errorf("missing input: provide args or -F")
		}
		return strings.Join(args, " "), nil
	}
	if inputFile == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return trimTrailingNewline(string(data)), nil
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return trimTrailingNewline(string(data)), nil
}

func trimTrailingNewline(value string) string {
	return strings.TrimRight(value, "\r\n")
}
