package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
	"github.com/sozercan/algowhisperer/internal/session"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Paste URLs and run actions in a loop",
	Long: `Starts an interactive session. Paste a problem URL on its own line, then:

  :explain          explain the problem like you are five
  :solve <lang>     generate a solution (default C++)
  :cases            generate nasty test cases
  :quit             leave`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, a, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	s := session.New(a, session.Options{
		Debounce: cfg.Input.Debounce,
		OnURLChange: func(url string, valid bool) {
			reportURL(out, url, valid)
		},
	})
	defer s.Close()

	return repl(ctx, cmd.InOrStdin(), out, s)
}

func reportURL(w io.Writer, url string, valid bool) {
	if valid {
		p, _ := platform.Classify(url)
		fmt.Fprintf(w, "✓ %s problem detected. Try :explain, :solve <lang> or :cases\n", p)
		return
	}
	if strings.TrimSpace(url) != "" {
		fmt.Fprintln(w, "✗ Unsupported URL. Paste a LeetCode, Codeforces or CodeChef problem link.")
	}
}

func repl(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if !strings.HasPrefix(line, ":") {
			s.SetInput(line)
			// Each line is a complete edit.
			s.Flush()
			fmt.Fprint(out, "> ")
			continue
		}

		cmdName, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
		var action prompt.Action
		var err error
		switch strings.ToLower(cmdName) {
		case "q", "quit", "exit":
			return nil
		case "solve":
			if strings.TrimSpace(arg) == "" {
				arg = prompt.CPP.String()
			}
			action, err = prompt.NewAction(cmdName, arg)
		default:
			action, err = prompt.NewAction(cmdName, "")
		}
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n> ", err)
			continue
		}

		stop := withLoadingMessages(ctx, os.Stderr)
		res, err := s.Act(ctx, action, llm.WithModel(model))
		stop()

		switch {
		case errors.Is(err, session.ErrNotReady), errors.Is(err, session.ErrBusy):
			fmt.Fprintf(out, "✗ %v\n", err)
		case err != nil:
			fmt.Fprintf(out, "✗ %s\n", s.Snapshot().Error)
		case res != nil:
			fmt.Fprintln(out, formatResult(res, raw))
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
