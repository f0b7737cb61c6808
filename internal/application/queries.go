package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/store"
)

type StoreState struct {
	Kind       store.Kind
	Loaded     bool
	Paused     bool
	ObservedAt time.Time
	Err        error
}

type ActionVerdict struct {
	Action  domain.Action
	Target  domain.ProgramID
	Verdict domain.Verdict
}

type LowBalance struct {
	Network   domain.Network
	Token     domain.Token
	Available decimal.Decimal
	Threshold decimal.Decimal
}

// Overview is a point-in-time read of everything the orchestrator knows.
type Overview struct {
	Now           time.Time
	Instance      domain.AgentInstance
	HasInstance   bool
	Status        domain.DeploymentStatus
	Authoritative domain.DeploymentStatus
	Override      domain.DeploymentStatus
	Busy          bool
	Stores        []StoreState
	Balances      []domain.BalanceSnapshot
	LowBalances   []LowBalance
	Programs      []domain.StakingProgramState
	Verdicts      []ActionVerdict
}

func (o Overview) Verdict(action domain.Action, target domain.ProgramID) (domain.Verdict, bool) {
	for _, v := range o.Verdicts {
		if v.Action == action && v.Target == target {
			return v.Verdict, true
		}
	}
	return domain.Verdict{}, false
}
