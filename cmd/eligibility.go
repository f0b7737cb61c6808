package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/agentctl/internal/adapters/render/status"
	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/domain"
)

func newEligibilityCmd(app *app) *cobra.Command {
	var (
		action  string
		program string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Explain which lifecycle actions are currently allowed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.refresh(cmd.Context()); err != nil {
				return err
			}
			if action == "" {
				return writeOverview(cmd, app, app.lifecycle.Overview(), asJSON, true)
			}

			parsed := domain.Action(action)
			if !parsed.Valid() {
				return fmt.Errorf("unknown action %q", action)
			}
			verdict, err := app.lifecycle.Verdict(parsed, domain.ProgramID(program))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.Explain(application.ActionVerdict{
				Action:  parsed,
				Target:  domain.ProgramID(program),
				Verdict: verdict,
			}, app.clock.Now()))
			return err
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "Only check one action: start, stop, migrate or withdraw")
	cmd.Flags().StringVar(&program, "program", "", "Target staking program for migrate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print verdicts as JSON")

	return cmd
}
