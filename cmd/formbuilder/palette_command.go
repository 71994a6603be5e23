package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/termui"
	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/properties"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

func newPaletteCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "palette",
		Short:       "List the field types that can be dropped into a fieldset",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := dnd.Palette()
			if asJSON {
				return writeJSON(cmd, tokens)
			}
			rows := make([][]string, 0, len(tokens))
			for _, token := range tokens {
				rows = append(rows, []string{
					string(token.Type),
					token.DisplayName,
					model.BaseName(string(token.Type)),
					wire.Type(token.Type),
					joinProperties(properties.EditableProperties(string(token.Type))),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), termui.RenderTable(
				[]string{"Type", "Palette", "Default name", "Wire type", "Editable"},
				rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the palette as JSON")
	return cmd
}

func joinProperties(props []properties.Property) string {
	names := make([]string, len(props))
	for i, prop := range props {
		names[i] = string(prop)
	}
	return strings.Join(names, ", ")
}
