package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

var errNotTerminal = errors.New("interactive commands need a terminal on stdin")

var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func requireTerminal() error {
	if stdinIsTerminal() {
		return nil
	}
	return errNotTerminal
}

func (c *commandContext) session(cmd *cobra.Command) (*session.Session, error) {
	client, err := c.remoteClient(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	return session.New(client, session.WithLogger(logger)), nil
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the remote schema interactively",
		Long: "Load the remote schema and edit it from a menu: add, select, edit, move, " +
			"duplicate and delete fields, then save a draft or the final form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTerminal(); err != nil {
				return err
			}
			sess, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			runCtx := commandCtx(cmd)
			if err := sess.Load(runCtx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Starting with an empty form: %v\n", err)
			}
			err = tui.Interact(runCtx, tui.NewSurveyDriver(cmd.OutOrStdout()), sess)
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}
}

func newFillCommand(ctx *commandContext) *cobra.Command {
	var (
		file   string
		output string
		format string
		keys   string
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the form from the terminal and print the answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := tui.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			answerKeys, err := tui.ParseAnswerKeys(keys)
			if err != nil {
				return err
			}
			if err := requireTerminal(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			groups, err := ctx.loadGroups(cmd, file)
			if err != nil {
				return err
			}
			renderer := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(outputFormat),
				tui.WithAnswerKeys(answerKeys),
			)
			body, err := renderer.Render(commandCtx(cmd), groups, previewOptions(cfg))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(body, '\n'))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the schema from a file instead of the endpoint")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "json", "Answer format: json, form or pretty")
	cmd.Flags().StringVar(&keys, "keys", "name", "Key answers by item name or by wire id")
	return cmd
}
