package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"proposal-desk/internal/views/action"
)

const shellPrompt = "proposal-desk> "

// Shell is a line-editing prompt over one App. The simulated backend keeps its data for the life of the shell.
type Shell struct {
	app         *App
	line        *liner.State
	historyFile string
}

func NewShell(app *App) *Shell {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if dir, err := os.UserConfigDir(); err == nil {
		historyFile = filepath.Join(dir, "proposal-desk", "shell_history")
	}

	s := &Shell{app: app, line: line, historyFile: historyFile}
	s.loadHistory()
	return s
}

func (s *Shell) loadHistory() {
	if s.historyFile == "" {
		return
	}
	if f, err := os.Open(s.historyFile); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}
}

func (s *Shell) saveHistory() {
	if s.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(s.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	s.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (s *Shell) Close() error {
	s.saveHistory()
	return s.line.Close()
}

// Run reads commands until exit, EOF or Ctrl+C.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.app.out, "Connected to the %s backend. Type help for commands, exit to quit.\n", s.app.backend.Name())

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := s.line.Prompt(shellPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(s.app.out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		s.line.AppendHistory(input)

		fields, err := splitArgs(input)
		if err != nil {
			fmt.Fprintln(s.app.out, err)
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := s.app.Dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintln(s.app.out, action.Message(err))
		}
	}
}

// splitArgs splits a command line on whitespace, honouring single and double quotes.
func splitArgs(input string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)
	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
