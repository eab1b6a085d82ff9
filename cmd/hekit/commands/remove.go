package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hekit/internal/app"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <component> [instance]",
		Short: "Delete the tree of an instance, or of every instance of a component",
		Args: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if all {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			opts := app.RemoveOptions{
				Component:  args[0],
				All:        all,
				ConfigPath: configPath(cmd),
			}
			if !all {
				opts.Instance = args[1]
			}
			return c.app.Remove(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Remove every instance of the component")
	return cmd
}
