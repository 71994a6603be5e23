package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/termui"
	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the fieldsets and fields of a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := ctx.loadGroups(cmd, file)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, wire.ToWire(groups))
			}
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "Schema is empty")
				return nil
			}
			fmt.Fprintln(out, renderOutline(groups))
			fmt.Fprintln(out, outlineSummary(groups))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the schema from a file instead of the endpoint (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the wire payload instead of a table")
	return cmd
}

func renderOutline(groups []model.Group) string {
	headers := []string{"#", "Fieldset", "Field", "Type", "Short ID", "Options"}
	var rows [][]string
	for gi, group := range groups {
		rows = append(rows, []string{
			strconv.Itoa(gi + 1),
			group.Name,
			"",
			"Field-set",
			wire.ShortID(group.ID),
			"",
		})
		for fi, field := range group.Fields {
			rows = append(rows, []string{
				fmt.Sprintf("%d.%d", gi+1, fi+1),
				"",
				field.Name,
				dnd.DisplayName(field.Type),
				wire.ShortID(field.ID),
				optionList(field),
			})
		}
	}
	return termui.RenderTable(headers, rows, []termui.ColumnAlignment{termui.AlignRight})
}

func optionList(field model.Field) string {
	if !field.Type.IsChoice() {
		return ""
	}
	values := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		values = append(values, option.Value)
	}
	return strings.Join(values, ", ")
}

func outlineSummary(groups []model.Group) string {
	fields := 0
	for _, group := range groups {
		fields += len(group.Fields)
	}
	return fmt.Sprintf("%s, %s",
		plural(len(groups), "fieldset"),
		plural(fields, "field"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func newPullCommand(ctx *commandContext) *cobra.Command {
	var output string
	var raw bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the schema payload",
		Long: "Download the schema payload. The payload is normalised to a bare array " +
			"unless --raw is given, in which case the response body is written as received.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.remoteClient(cmd)
			if err != nil {
				return err
			}
			body, err := client.FetchRaw(commandCtx(cmd))
			if err != nil {
				return fmt.Errorf("fetch schema: %w", err)
			}
			if !raw {
				groups, err := wire.DecodePayload(body)
				if err != nil {
					return fmt.Errorf("decode schema: %w", err)
				}
				if body, err = wire.EncodePayload(groups); err != nil {
					return fmt.Errorf("encode schema: %w", err)
				}
				body = append(body, '\n')
			}
			return writeOutput(cmd, output, body)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Write the response body without normalising it")
	return cmd
}

func newPushCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Upload a schema payload to the endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := readGroupsFile(args[0])
			if err != nil {
				return err
			}
			payload := wire.ToWire(groups)
			body, err := wire.EncodePayload(payload)
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			out := cmd.OutOrStdout()
			summary := fmt.Sprintf("%s (%s)", outlineSummary(groups), humanize.Bytes(uint64(len(body))))
			if dryRun {
				fmt.Fprintf(out, "Would push %s\n", summary)
				return nil
			}

			client, err := ctx.remoteClient(cmd)
			if err != nil {
				return err
			}
			if err := client.Push(commandCtx(cmd), payload); err != nil {
				return fmt.Errorf("push schema: %w", err)
			}
			fmt.Fprintf(out, "Pushed %s to %s\n", summary, client.Endpoint())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decode and summarise the file without uploading it")
	return cmd
}
