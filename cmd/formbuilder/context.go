package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/remote"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

type commandContext struct {
	configFlag   *string
	endpointFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, endpointFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		endpointFlag: endpointFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.endpointFlag != nil {
			if endpoint := strings.TrimSpace(*c.endpointFlag); endpoint != "" {
				cfg.Remote.Endpoint = endpoint
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) remoteClient(cmd *cobra.Command) (*remote.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireEndpoint(); err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	return remote.New(cfg.Remote.Endpoint,
		remote.WithTimeout(cfg.Remote.Timeout()),
		remote.WithUserAgent(cfg.Remote.UserAgent),
		remote.WithLogger(logger),
	)
}

// loadGroups reads the schema from file when one is named, otherwise from the
// remote endpoint.
func (c *commandContext) loadGroups(cmd *cobra.Command, file string) ([]model.Group, error) {
	if file = strings.TrimSpace(file); file != "" {
		return readGroupsFile(file)
	}
	client, err := c.remoteClient(cmd)
	if err != nil {
		return nil, err
	}
	groups, err := client.Fetch(commandCtx(cmd))
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	return wire.FromWire(groups), nil
}

func readGroupsFile(path string) ([]model.Group, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	groups, err := wire.DecodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", path, err)
	}
	return wire.FromWire(groups), nil
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
