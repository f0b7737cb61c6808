package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/agentctl/internal/domain"
)

func newStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Deploy and start the agent in its staking program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLifecycle(cmd, app, lifecycleOp{action: domain.ActionStart, run: app.lifecycle.Start})
		},
	}
}

func newStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLifecycle(cmd, app, lifecycleOp{action: domain.ActionStop, run: app.lifecycle.Stop})
		},
	}
}

func newMigrateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <program>",
		Short: "Move the agent to another staking program and restart it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program := domain.ProgramID(args[0])
			return runLifecycle(cmd, app, lifecycleOp{
				action:  domain.ActionMigrate,
				program: program,
				run: func(ctx context.Context) error {
					return app.lifecycle.Migrate(ctx, program)
				},
			})
		},
	}
}

func newWithdrawCmd(app *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the service funds to an address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			address, err := domain.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("parse --to: %w", err)
			}
			return runLifecycle(cmd, app, lifecycleOp{
				action: domain.ActionWithdraw,
				run: func(ctx context.Context) error {
					return app.lifecycle.Withdraw(ctx, address)
				},
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination address")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runLifecycle(cmd *cobra.Command, app *app, op lifecycleOp) error {
	if err := app.refresh(cmd.Context()); err != nil {
		return err
	}

	if err := runLifecycleSpinner(cmd.Context(), cmd.ErrOrStderr(), app.clock.Now, op); err != nil {
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Agent status: %s\n", op.doneMessage(), app.lifecycle.Status().Label())
	return err
}
