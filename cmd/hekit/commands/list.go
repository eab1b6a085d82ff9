package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/hekit/internal/app"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed instances and the outcome of their stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			component, _ := cmd.Flags().GetString("component")

			records, err := c.app.List(cmd.Context(), app.ListOptions{
				Component:  component,
				ConfigPath: configPath(cmd),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "no instances found")
				return nil
			}
			_, _ = fmt.Fprintln(out, renderRecords(records))
			return nil
		},
	}
	cmd.Flags().StringP("component", "c", "", "Only list instances of this component")
	return cmd
}

func renderRecords(records []domain.InstanceRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Muted).
		Headers("COMPONENT", "INSTANCE", "FETCH", "BUILD", "INSTALL").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Header
			}
			return style.Cell
		})

	for _, r := range records {
		t.Row(
			r.Ref.Component,
			r.Ref.Name,
			outcome(r.Status.Get(domain.StageFetch)),
			outcome(r.Status.Get(domain.StageBuild)),
			outcome(r.Status.Get(domain.StageInstall)),
		)
	}
	return t.Render()
}

func outcome(o domain.Outcome) string {
	switch o {
	case domain.Success:
		return style.Success.Render(style.Check + " " + string(o))
	case domain.Failure:
		return style.Failure.Render(style.Cross + " " + string(o))
	default:
		return style.Muted.Render("-")
	}
}
