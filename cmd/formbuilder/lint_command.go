package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/termui"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var errLintIssues = errors.New("lint: schema has issues")

func newLintCommand(ctx *commandContext) *cobra.Command {
	var (
		file   string
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report problems the remote or a renderer may trip over",
		Long: "Report duplicate names, short id collisions, and other problems. Issues " +
			"never block a save; pass --strict to exit non-zero when any are found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := ctx.loadGroups(cmd, file)
			if err != nil {
				return err
			}
			result := validation.Lint(groups)
			if asJSON {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				printLint(cmd, result)
			}
			if strict && !result.Valid {
				return fmt.Errorf("%w: %d found", errLintIssues, len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the schema from a file instead of the endpoint (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when issues are found")
	return cmd
}

func printLint(cmd *cobra.Command, result validation.SchemaValidationResult) {
	out := cmd.OutOrStdout()
	color := termui.ShouldColorize(out)
	if result.Valid {
		fmt.Fprintln(out, termui.Colorize(color, text.Colors{text.FgGreen}, "No issues found"))
		return
	}
	rows := make([][]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		rows = append(rows, []string{
			termui.Colorize(color, text.Colors{text.FgYellow}, string(issue.Code)),
			issue.Path,
			issue.Message,
		})
	}
	fmt.Fprintln(out, termui.RenderTable([]string{"Code", "Path", "Message"}, rows, nil))
	fmt.Fprintln(out, plural(len(result.Issues), "issue"))
}
