package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/domain"
)

func newSelectCmd(app *app) *cobra.Command {
	var (
		agentType string
		network   string
		program   string
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose the agent type, home network and staking program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				instance domain.AgentInstance
				err      error
			)
			if agentType == "" && network == "" {
				if program == "" {
					return fmt.Errorf("nothing to select: pass --agent-type and --network, or --program")
				}
				instance, err = app.instances.SelectStakingProgram(cmd.Context(), domain.ProgramID(program))
			} else {
				instance, err = app.instances.SelectAgent(cmd.Context(), application.SelectAgentCommand{
					AgentType:      domain.AgentType(agentType),
					HomeNetwork:    domain.Network(network),
					StakingProgram: domain.ProgramID(program),
				})
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Selected %s on %s in staking program %s\n",
				instance.AgentType, instance.HomeNetwork, instance.StakingProgram)
			return err
		},
	}
	cmd.Flags().StringVar(&agentType, "agent-type", "", "Agent type")
	cmd.Flags().StringVar(&network, "network", "", "Home network")
	cmd.Flags().StringVar(&program, "program", "", "Staking program")

	return cmd
}
