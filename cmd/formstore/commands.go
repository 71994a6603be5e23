package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/schemastore"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/internal/termui"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr, route, wrapKey string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schema over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			opts := schemastore.HandlerOptions{
				Route:   firstNonBlank(route, cfg.Store.Route),
				WrapKey: firstNonBlank(wrapKey, cfg.Store.WrapKey),
				Logger:  logger,
			}
			listen := firstNonBlank(addr, cfg.Store.Addr)
			return ctx.withStore(cmd, func(runCtx context.Context, store *schemastore.Store) error {
				fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s%s\n", store.Path(), listen, opts.Route)
				return server.Serve(runCtx, listen, schemastore.NewHandler(store, opts), logger)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides store.addr)")
	cmd.Flags().StringVar(&route, "route", "", "Schema route (overrides store.route)")
	cmd.Flags().StringVar(&wrapKey, "wrap-key", "", "Wrap GET responses in an object under this key")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored revisions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, store *schemastore.Store) error {
				revisions, err := store.History(runCtx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					if revisions == nil {
						revisions = []schemastore.Revision{}
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(revisions)
				}
				if len(revisions) == 0 {
					fmt.Fprintln(out, "No revisions stored")
					return nil
				}
				rows := make([][]string, 0, len(revisions))
				for _, rev := range revisions {
					rows = append(rows, []string{
						strconv.FormatInt(rev.ID, 10),
						rev.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						humanize.Time(rev.CreatedAt),
						strconv.Itoa(rev.Fieldsets),
						humanize.Bytes(uint64(rev.Size)),
					})
				}
				fmt.Fprintln(out, termui.RenderTable(
					[]string{"ID", "Created", "Age", "Fieldsets", "Size"},
					rows,
					[]termui.ColumnAlignment{termui.AlignRight, termui.AlignLeft, termui.AlignLeft, termui.AlignRight, termui.AlignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum revisions to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the revisions as JSON")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Store a schema payload as a new revision (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			return ctx.withStore(cmd, func(runCtx context.Context, store *schemastore.Store) error {
				rev, err := store.Put(runCtx, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored revision %d (%d fieldsets, %s)\n",
					rev.ID, rev.Fieldsets, humanize.Bytes(uint64(rev.Size)))
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [id]",
		Short: "Print the latest revision, or the one with id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				parsed, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
				if err != nil || parsed < 1 {
					return fmt.Errorf("invalid revision id %q", args[0])
				}
				id = parsed
			}
			return ctx.withStore(cmd, func(runCtx context.Context, store *schemastore.Store) error {
				var (
					rev schemastore.Revision
					ok  bool
					err error
				)
				if id == 0 {
					rev, ok, err = store.Latest(runCtx)
				} else {
					rev, ok, err = store.Revision(runCtx, id)
				}
				if err != nil {
					return err
				}
				if !ok {
					if id == 0 {
						return errors.New("no revisions stored")
					}
					return fmt.Errorf("revision %d not found", id)
				}
				out := cmd.OutOrStdout()
				if _, err := out.Write(rev.Payload); err != nil {
					return err
				}
				_, err = fmt.Fprintln(out)
				return err
			})
		},
	}
}

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest revisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 1 {
				return errors.New("--keep must be at least 1")
			}
			return ctx.withStore(cmd, func(runCtx context.Context, store *schemastore.Store) error {
				removed, err := store.Prune(runCtx, keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s, kept the newest %d\n",
					pluralRevisions(removed), keep)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 10, "Number of revisions to keep")
	return cmd
}

func pluralRevisions(n int64) string {
	if n == 1 {
		return "1 revision"
	}
	return humanize.Comma(n) + " revisions"
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}
