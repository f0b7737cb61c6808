package application

import "github.com/bnema/agentctl/internal/domain"

type SelectAgentCommand struct {
	AgentType      domain.AgentType
	HomeNetwork    domain.Network
	StakingProgram domain.ProgramID
}
