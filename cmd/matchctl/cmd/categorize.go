package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pageza/pantrymatch/backend/internal/matching"
)

type categorized struct {
	Input    string            `json:"input"`
	Name     string            `json:"name"`
	Category matching.Category `json:"category"`
}

func newCategorizeCmd(engine engineFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize NAME...",
		Short: "Show the category each ingredient name falls into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := engine(cmd)
			if err != nil {
				return err
			}
			out := make([]categorized, 0, len(args))
			for _, name := range args {
				normalized := matching.Normalize(name)
				out = append(out, categorized{Input: name, Name: normalized, Category: e.Categorize(normalized)})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
