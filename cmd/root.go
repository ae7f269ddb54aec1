package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rasiler/academy-graphql1/internal/blogcore"
	"github.com/rasiler/academy-graphql1/internal/config"
)

var core *blogcore.Core
var cfg *config.Config
var dataPath string

var rootCmd = &cobra.Command{
	Use:   "academy-graphql",
	Short: "A GraphQL query and mutation engine for a small blog data set",
	Long: `academy-graphql serves a typed GraphQL schema (posts, users, comments)
over an in-memory data set loaded from a JSON or YAML seed file.

Queries and mutations can be executed one-shot from the command line or
served over HTTP with an interactive playground.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The init command creates the files everything else depends on.
		if cmd.Name() == "init" {
			return nil
		}

		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		cfg, err = config.Load(dir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		path := dataPath
		if path == "" {
			path = cfg.Data.File
		}

		core = blogcore.New(path)
		if err := core.Load(); err != nil {
			return fmt.Errorf("loading %s: %w (run 'academy-graphql init' to create a starter data set)", path, err)
		}

		if cfg.Search.Enabled {
			if err := core.EnableSearch(); err != nil {
				return fmt.Errorf("building search index: %w", err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the seed data file (overrides config)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
