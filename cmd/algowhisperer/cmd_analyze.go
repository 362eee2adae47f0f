package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

var solveLanguage string

var classifyCmd = &cobra.Command{
	Use:   "classify [url]",
	Short: "Report which platform a problem URL belongs to",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var explainCmd = &cobra.Command{
	Use:   "explain [url]",
	Short: "Explain the problem like you are five",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args[0], prompt.Explain{})
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [url]",
	Short: "Generate an optimized solution with complexity analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := prompt.NewAction(string(prompt.KindSolve), solveLanguage)
		if err != nil {
			return err
		}
		return runAction(cmd, args[0], action)
	},
}

var casesCmd = &cobra.Command{
	Use:     "cases [url]",
	Aliases: []string{"nasty", "test-cases"},
	Short:   "Generate adversarial test cases",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args[0], prompt.AdversarialCases{})
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported solution languages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range prompt.Languages {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
	},
}

func init() {
	names := make([]string, len(prompt.Languages))
	for i, l := range prompt.Languages {
		names[i] = l.String()
	}
	solveCmd.Flags().StringVarP(&solveLanguage, "lang", "l", prompt.CPP.String(),
		"Solution language ("+strings.Join(names, ", ")+")")

	rootCmd.AddCommand(classifyCmd, explainCmd, solveCmd, casesCmd, languagesCmd, interactiveCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	c := platform.Evaluate(args[0])
	out := cmd.OutOrStdout()
	switch c.Status {
	case platform.StatusIdle:
		return fmt.Errorf("no URL given")
	case platform.StatusInvalid:
		fmt.Fprintf(out, "✗ %s is not a supported problem URL\n", c.Input)
		return fmt.Errorf("unsupported URL")
	default:
		fmt.Fprintf(out, "✓ %s problem: %s\n", c.Platform, c.Input)
		return nil
	}
}

func runAction(cmd *cobra.Command, url string, action prompt.Action) error {
	_, a, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stop := withLoadingMessages(ctx, os.Stderr)
	res, err := a.Analyze(ctx, url, action, llm.WithModel(model))
	stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatResult(res, raw))
	return nil
}
