package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/desvart/qsnap/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
		Long: `Manage the cache of computed layouts and rendered images. The backend is
chosen in the [cache] section of the config file and is off by default.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and image",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := c.Config.Cache.Backend
			if backend == config.CacheNone {
				c.ui.warning("Cache is disabled; nothing to clear")
				return nil
			}

			cc, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cc.Close()

			if err := cc.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s cache: %w", backend, err)
			}

			c.ui.success("Cleared %s cache", backend)
			if loc, err := c.cacheLocation(); err == nil {
				c.ui.detail("Location: %s", loc)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Long:  `Print the file cache directory, or the Redis address when the Redis backend is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.cacheLocation()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			c.ui.println(loc)
			return nil
		},
	}
}

func (c *CLI) cacheLocation() (string, error) {
	if c.Config.Cache.Backend == config.CacheRedis {
		return fmt.Sprintf("redis://%s/%d", c.Config.Cache.Redis.Addr, c.Config.Cache.Redis.DB), nil
	}
	return c.fileCacheDir()
}
