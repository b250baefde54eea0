package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/matching"
)

// NewRootCmd builds the matchctl command tree
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "matchctl",
		Short:        "Score recipes against the ingredients you have",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/matching.yaml",
		"matching tables file; built-in tables are used when it does not exist")

	engine := func(cmd *cobra.Command) (*matching.Engine, error) {
		return loadEngine(cmd, configPath)
	}

	root.AddCommand(newScoreCmd(engine))
	root.AddCommand(newCategorizeCmd(engine))
	root.AddCommand(newParseCmd(engine))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

type engineFunc func(cmd *cobra.Command) (*matching.Engine, error)

func loadEngine(cmd *cobra.Command, path string) (*matching.Engine, error) {
	cfg, tables, err := config.LoadMatching(cmd.Context(), &config.Config{MatchingConfigPath: path}, nil)
	if err != nil {
		return nil, err
	}
	return matching.NewEngine(cfg, tables, nil)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
