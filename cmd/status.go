package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/agentctl/internal/adapters/httpapi"
	statusadapter "github.com/bnema/agentctl/internal/adapters/render/status"
	"github.com/bnema/agentctl/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show agent, balance and staking status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.refresh(cmd.Context()); err != nil {
				return err
			}
			return writeOverview(cmd, app, app.lifecycle.Overview(), asJSON, false)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	return cmd
}

func writeOverview(cmd *cobra.Command, app *app, overview application.Overview, asJSON, verdictsOnly bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.NewStatusResponse(overview))
	}

	rendered, err := app.statusRenderer(overview, statusadapter.RenderOptions{
		Now:          app.clock.Now(),
		VerdictsOnly: verdictsOnly,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
