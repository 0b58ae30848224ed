// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/console"
)

type options struct {
	table    string
	key      string
	fallback string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "condfetch --table FILE --key KEY",
		Short:         "Look a key up in a YAML table, recovering from misses with restarts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.table, "table", "", "YAML file with a flat key: value mapping")
	cmd.Flags().StringVar(&opts.key, "key", "", "key to look up")
	cmd.Flags().StringVar(&opts.fallback, "default", "", "value returned by the continue restart")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func run(out io.Writer, opts options) error {
	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	table, err := loadTable(opts.table)
	if err != nil {
		return err
	}

	env := cond.NewEnv(cond.WithLogger(newLogger(level)))
	prompter, closePrompter := console.NewPrompter()
	defer closePrompter()
	policy := cond.NewPolicy(env, cond.WithPrompter(prompter), cond.WithEmphasis(console.Emphasis()))

	var value string
	err = env.WithDefaultHandlers(policy, func() error {
		var err error
		value, err = fetch(env, prompter, table, opts.key, opts.fallback)
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "value: %q\n", value)
	return err
}

// newLogger writes text logs to stderr, keeping stdout for the result.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
