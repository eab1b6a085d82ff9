package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/hekit/internal/app"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/zerr"
)

var stageShort = map[domain.Stage]string{
	domain.StageFetch:   "Fetch the sources of every instance in a recipe",
	domain.StageBuild:   "Fetch and build every instance in a recipe",
	domain.StageInstall: "Fetch, build and install every instance in a recipe",
}

func (c *CLI) newStageCmd(stage domain.Stage) *cobra.Command {
	var recipeArgs []string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <recipe-file>", stage),
		Short: stageShort[stage],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseRecipeArgs(recipeArgs)
			if err != nil {
				return err
			}

			pty, _ := cmd.Flags().GetBool("pty")
			force := false
			if stage != domain.StageFetch {
				force, _ = cmd.Flags().GetBool("force")
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Recipe:     args[0],
				Upto:       stage,
				Force:      force,
				RecipeArgs: parsed,
				ConfigPath: configPath(cmd),
				PTY:        pty,
			})
		},
	}

	cmd.Flags().StringArrayVar(&recipeArgs, "recipe_arg", nil,
		"Recipe argument as key=value, comma separated or repeated")
	cmd.Flags().Bool("pty", false, "Run commands attached to a pseudo-terminal")
	if stage != domain.StageFetch {
		cmd.Flags().BoolP("force", "f", false, fmt.Sprintf("Run %s again even if it already succeeded", stage))
	}
	return cmd
}

// parseRecipeArgs merges key=value pairs. Later pairs override earlier ones.
// Only the first '=' separates key from value.
func parseRecipeArgs(values []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, v := range values {
		for pair := range strings.SplitSeq(v, ",") {
			if pair == "" {
				continue
			}
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRecipeArg, "cannot parse --recipe_arg"), "arg", pair)
			}
			out[key] = value
		}
	}
	return out, nil
}
