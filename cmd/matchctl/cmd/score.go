package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/pantrymatch/backend/internal/matching"
)

type scoredRecipe struct {
	ID     string               `json:"id"`
	Title  string               `json:"title"`
	Result matching.ScoreResult `json:"result"`
}

func newScoreCmd(engine engineFunc) *cobra.Command {
	var (
		recipesPath string
		have        []string
		pantry      []string
		minResults  int
		all         bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank the recipes in a JSON file",
		Long: `Rank the recipes in a JSON file against the ingredients you have.

The file holds an array of {"id", "title", "ingredients"} objects; each
ingredient may be a free-text line or a structured object. Use "-" to read
the array from stdin. With --all every recipe is scored and none are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := engine(cmd)
			if err != nil {
				return err
			}
			recipes, err := readRecipes(cmd.InOrStdin(), recipesPath)
			if err != nil {
				return err
			}

			if all {
				pool := matching.NewPool(append(append([]string{}, have...), pantry...)...)
				out := make([]scoredRecipe, 0, len(recipes))
				for _, r := range recipes {
					out = append(out, scoredRecipe{ID: r.ID, Title: r.Title, Result: e.Score(r, pool)})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			return writeJSON(cmd.OutOrStdout(), e.Search(recipes, have, pantry, minResults))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&recipesPath, "recipes", "r", "", `recipes JSON file, or "-" for stdin`)
	f.StringSliceVar(&have, "have", nil, "ingredients you have (comma separated or repeated)")
	f.StringSliceVar(&pantry, "pantry", nil, "pantry staples to count as available")
	f.IntVarP(&minResults, "min", "n", 0, "number of recipes wanted; 0 uses the configured default")
	f.BoolVar(&all, "all", false, "score every recipe without filtering or ranking")
	_ = cmd.MarkFlagRequired("recipes")
	return cmd
}

func readRecipes(stdin io.Reader, path string) ([]matching.Recipe, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	var recipes []matching.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = fmt.Sprintf("%d", i+1)
		}
	}
	return recipes, nil
}
