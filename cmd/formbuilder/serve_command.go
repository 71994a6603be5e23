package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing API, previews, and the live change feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			sess, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			runCtx := commandCtx(cmd)
			if err := sess.Load(runCtx); err != nil {
				logger.Warn("initial load failed, serving an empty form", "endpoint", cfg.Remote.Endpoint, "error", err)
			}

			registry, err := ctx.renderers(cmd)
			if err != nil {
				return err
			}
			srv, err := server.New(sess,
				server.WithLogger(logger),
				server.WithRenderers(registry),
				server.WithRenderDefaults(previewOptions(cfg)),
				server.WithAssets(formbuilder.AssetsFS()),
				server.WithOriginPatterns(cfg.Server.OriginPatterns...),
			)
			if err != nil {
				return err
			}

			listen := cfg.Server.Addr
			if v := strings.TrimSpace(addr); v != "" {
				listen = v
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Editing %s on http://%s\n", cfg.Remote.Endpoint, listen)
			return srv.Run(runCtx, listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
