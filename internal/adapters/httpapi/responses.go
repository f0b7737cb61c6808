package httpapi

import (
	"time"

	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/domain"
)

type instanceBody struct {
	ConfigID       string `json:"service_config_id,omitempty"`
	AgentType      string `json:"agent_type"`
	HomeNetwork    string `json:"home_network"`
	StakingProgram string `json:"staking_program"`
}

type storeBody struct {
	Kind       string `json:"kind"`
	Loaded     bool   `json:"loaded"`
	Paused     bool   `json:"paused"`
	ObservedAt *int64 `json:"observed_at,omitempty"`
	Error      string `json:"error,omitempty"`
}

type balanceBody struct {
	Address string `json:"address"`
	Network string `json:"chain"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
	Native  bool   `json:"native"`
	Staked  bool   `json:"staked"`
}

type lowBalanceBody struct {
	Network   string `json:"chain"`
	Token     string `json:"token"`
	Available string `json:"available"`
	Threshold string `json:"threshold"`
}

type programBody struct {
	ID               string            `json:"program_id"`
	MaxSlots         int               `json:"max_slots"`
	UsedSlots        int               `json:"used_slots"`
	RequiredStake    map[string]string `json:"required_stake"`
	MinimumDuration  int64             `json:"minimum_staking_duration"`
	RewardsAvailable bool              `json:"rewards_available"`
	AgentStaked      bool              `json:"agent_staked"`
	MigratableTo     []string          `json:"migratable_to,omitempty"`
}

type verdictBody struct {
	Allowed          bool   `json:"allowed"`
	Reason           string `json:"reason,omitempty"`
	Explanation      string `json:"explanation"`
	ReadyAt          *int64 `json:"ready_at,omitempty"`
	RemainingSeconds int64  `json:"remaining_seconds,omitempty"`
	Token            string `json:"token,omitempty"`
	Required         string `json:"required,omitempty"`
	Have             string `json:"have,omitempty"`
}

type verdictResponse struct {
	Action string `json:"action"`
	Target string `json:"program,omitempty"`
	verdictBody
}

// StatusResponse is the JSON form of an orchestrator overview.
type StatusResponse struct {
	Now           int64             `json:"now"`
	Instance      *instanceBody     `json:"instance"`
	Status        string            `json:"status"`
	Authoritative string            `json:"authoritative_status"`
	Override      string            `json:"override,omitempty"`
	Busy          bool              `json:"busy"`
	Stores        []storeBody       `json:"stores"`
	Balances      []balanceBody     `json:"balances"`
	LowBalances   []lowBalanceBody  `json:"low_balances"`
	Programs      []programBody     `json:"programs"`
	Verdicts      []verdictResponse `json:"verdicts"`
}

func newVerdictBody(v domain.Verdict, now time.Time) verdictBody {
	body := verdictBody{
		Allowed:     v.Allowed(),
		Reason:      string(v.Reason),
		Explanation: v.Explain(now),
		ReadyAt:     unixOrNil(v.ReadyAt),
	}
	if !v.ReadyAt.IsZero() {
		body.RemainingSeconds = int64(v.RemainingAt(now) / time.Second)
	}
	if v.Reason == domain.ReasonInsufficientStake {
		body.Token = string(v.Token)
		body.Required = v.Required.String()
		body.Have = v.Have.String()
	}
	return body
}

func newVerdictResponse(action domain.Action, target domain.ProgramID, v domain.Verdict, now time.Time) verdictResponse {
	return verdictResponse{
		Action:      string(action),
		Target:      string(target),
		verdictBody: newVerdictBody(v, now),
	}
}

func NewStatusResponse(o application.Overview) StatusResponse {
	resp := StatusResponse{
		Now:           o.Now.Unix(),
		Status:        string(o.Status),
		Authoritative: string(o.Authoritative),
		Override:      string(o.Override),
		Busy:          o.Busy,
		Stores:        make([]storeBody, 0, len(o.Stores)),
		Balances:      make([]balanceBody, 0, len(o.Balances)),
		LowBalances:   make([]lowBalanceBody, 0, len(o.LowBalances)),
		Programs:      make([]programBody, 0, len(o.Programs)),
		Verdicts:      make([]verdictResponse, 0, len(o.Verdicts)),
	}
	if resp.Status == "" {
		resp.Status = o.Status.Label()
	}
	if o.HasInstance {
		resp.Instance = &instanceBody{
			ConfigID:       string(o.Instance.ConfigID),
			AgentType:      string(o.Instance.AgentType),
			HomeNetwork:    string(o.Instance.HomeNetwork),
			StakingProgram: string(o.Instance.StakingProgram),
		}
	}

	for _, state := range o.Stores {
		body := storeBody{
			Kind:       string(state.Kind),
			Loaded:     state.Loaded,
			Paused:     state.Paused,
			ObservedAt: unixOrNil(state.ObservedAt),
		}
		if state.Err != nil {
			body.Error = state.Err.Error()
		}
		resp.Stores = append(resp.Stores, body)
	}
	for _, entry := range o.Balances {
		resp.Balances = append(resp.Balances, balanceBody{
			Address: entry.Wallet.Address.Hex(),
			Network: string(entry.Network),
			Token:   string(entry.Token),
			Amount:  entry.Amount.String(),
			Native:  entry.Native,
			Staked:  entry.Staked,
		})
	}
	for _, low := range o.LowBalances {
		resp.LowBalances = append(resp.LowBalances, lowBalanceBody{
			Network:   string(low.Network),
			Token:     string(low.Token),
			Available: low.Available.String(),
			Threshold: low.Threshold.String(),
		})
	}
	for _, program := range o.Programs {
		body := programBody{
			ID:               string(program.ID),
			MaxSlots:         program.MaxSlots,
			UsedSlots:        program.UsedSlots,
			RequiredStake:    make(map[string]string, len(program.RequiredStake)),
			MinimumDuration:  int64(program.MinimumDuration / time.Second),
			RewardsAvailable: program.RewardsAvailable,
			AgentStaked:      program.AgentStaked(),
		}
		for token, amount := range program.RequiredStake {
			body.RequiredStake[string(token)] = amount.String()
		}
		for _, target := range program.MigratableTo {
			body.MigratableTo = append(body.MigratableTo, string(target))
		}
		resp.Programs = append(resp.Programs, body)
	}
	for _, v := range o.Verdicts {
		resp.Verdicts = append(resp.Verdicts, newVerdictResponse(v.Action, v.Target, v.Verdict, o.Now))
	}

	return resp
}
