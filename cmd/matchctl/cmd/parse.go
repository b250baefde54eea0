package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pageza/pantrymatch/backend/internal/matching"
)

func newParseCmd(engine engineFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "parse LINE...",
		Short: "Split free-text ingredient lines into structured ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := engine(cmd)
			if err != nil {
				return err
			}
			parsed := matching.ParseLines(args)
			for i := range parsed {
				parsed[i] = e.PrepareIngredient(parsed[i])
			}
			return writeJSON(cmd.OutOrStdout(), parsed)
		},
	}
}
