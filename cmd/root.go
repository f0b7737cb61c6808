package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agentctl",
		Short:         "agentctl: run and stake an autonomous agent",
		Long:          "agentctl selects an agent, checks whether it may start, stop, migrate or withdraw, and drives the deployment backend through those transitions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newEligibilityCmd(app),
		newSelectCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newMigrateCmd(app),
		newWithdrawCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
