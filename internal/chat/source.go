package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/peterh/liner"
)

// LineSource yields one line of user input per call. Any error, io.EOF
// included, means no more input is available.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// ScannerSource reads newline-separated input from any reader and writes
// the prompt to out before each read.
type ScannerSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScannerSource(in io.Reader, out io.Writer) *ScannerSource {
	if out == nil {
		out = io.Discard
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ScannerSource{scanner: scanner, out: out}
}

func (s *ScannerSource) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

// LinerSource provides line editing and in-session history on a terminal.
// History is never written to disk.
type LinerSource struct {
	state *liner.State
}

func NewLinerSource() *LinerSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerSource{state: state}
}

func (s *LinerSource) ReadLine(prompt string) (string, error) {
	// liner measures the prompt byte for byte, so escape codes would break
	// cursor placement.
	input, err := s.state.Prompt(ansi.Strip(prompt))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		s.state.AppendHistory(input)
	}
	return input, nil
}

func (s *LinerSource) Close() error {
	return s.state.Close()
}
