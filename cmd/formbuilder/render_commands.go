package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/preview"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// previewOptions are the RenderOptions implied by the preview section of cfg.
func previewOptions(cfg *config.Config) render.RenderOptions {
	return render.RenderOptions{
		Title:   cfg.Preview.Title,
		Action:  cfg.Preview.Action,
		Theme:   cfg.Preview.Theme,
		Variant: cfg.Preview.Variant,
	}
}

func (c *commandContext) renderers(cmd *cobra.Command) (*render.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	return formbuilder.NewRenderers(
		formbuilder.WithLogger(logger),
		formbuilder.WithPreviewOptions(
			preview.WithStylesheetHref(cfg.Preview.StylesheetHref),
			preview.WithTemplatesDir(cfg.Preview.TemplatesDir),
		),
	)
}

func (c *commandContext) renderTo(cmd *cobra.Command, name, file, output string, adjust func(*render.RenderOptions, []formbuilder.Group)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	groups, err := c.loadGroups(cmd, file)
	if err != nil {
		return err
	}
	registry, err := c.renderers(cmd)
	if err != nil {
		return err
	}
	opts := previewOptions(cfg)
	if adjust != nil {
		adjust(&opts, groups)
	}
	body, _, err := registry.Render(commandCtx(cmd), name, groups, opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, body)
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		file    string
		output  string
		title   string
		theme   string
		variant string
		lint    bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the schema as a standalone HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.renderTo(cmd, formbuilder.RendererPreview, file, output, func(opts *render.RenderOptions, groups []formbuilder.Group) {
				if v := strings.TrimSpace(title); v != "" {
					opts.Title = v
				}
				if v := strings.TrimSpace(theme); v != "" {
					opts.Theme = v
				}
				if v := strings.TrimSpace(variant); v != "" {
					opts.Variant = v
				}
				if lint {
					opts.Errors = render.LintPayload(validation.Lint(groups))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the schema from a file instead of the endpoint (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (overrides preview.title)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme name (overrides preview.theme)")
	cmd.Flags().StringVar(&variant, "variant", "", "Theme variant (overrides preview.variant)")
	cmd.Flags().BoolVar(&lint, "lint", false, "Show lint issues next to the affected fields")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		file      string
		output    string
		title     string
		serverURL string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Describe the schema as an OpenAPI document or wire payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "openapi":
				name = formbuilder.RendererOpenAPI
			case "wire":
				name = formbuilder.RendererWire
			default:
				return fmt.Errorf("unsupported export format %q (want openapi or wire)", format)
			}
			return ctx.renderTo(cmd, name, file, output, func(opts *render.RenderOptions, _ []formbuilder.Group) {
				if v := strings.TrimSpace(title); v != "" {
					opts.Title = v
				}
				opts.ServerURL = strings.TrimSpace(serverURL)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the schema from a file instead of the endpoint (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (overrides preview.title)")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "Server URL advertised by the OpenAPI document")
	cmd.Flags().StringVar(&format, "format", "openapi", "Export format: openapi or wire")
	return cmd
}
