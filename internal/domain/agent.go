package domain

import (
	"fmt"
	"strings"
	"time"
)

type AgentType string
type Network string
type ConfigID string

type AgentInstance struct {
	ConfigID       ConfigID
	AgentType      AgentType
	HomeNetwork    Network
	StakingProgram ProgramID
	UpdatedAt      time.Time
}

func (a AgentInstance) Validate() error {
	if strings.TrimSpace(string(a.AgentType)) == "" {
		return fmt.Errorf("agent type is required")
	}
	if strings.TrimSpace(string(a.HomeNetwork)) == "" {
		return fmt.Errorf("home network is required")
	}
	if strings.TrimSpace(string(a.StakingProgram)) == "" {
		return fmt.Errorf("staking program is required")
	}

	return nil
}

// HasService reports whether the deployment backend already created the
// service for this instance.
func (a AgentInstance) HasService() bool {
	return strings.TrimSpace(string(a.ConfigID)) != ""
}

type ServiceParams struct {
	ConfigID       ConfigID
	AgentType      AgentType
	HomeNetwork    Network
	StakingProgram ProgramID
}

type InstanceRef struct {
	ConfigID ConfigID
}

type Action string

const (
	ActionStart    Action = "start"
	ActionStop     Action = "stop"
	ActionMigrate  Action = "migrate"
	ActionWithdraw Action = "withdraw"
)

func (a Action) Valid() bool {
	switch a {
	case ActionStart, ActionStop, ActionMigrate, ActionWithdraw:
		return true
	default:
		return false
	}
}
