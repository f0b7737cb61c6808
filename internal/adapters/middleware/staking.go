package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/domain"
)

type stakingRecordDTO struct {
	StakedSince    int64 `json:"staked_since"`
	Staked         bool  `json:"staked"`
	Evicted        bool  `json:"evicted"`
	EvictionEndsAt int64 `json:"eviction_ends_at"`
}

type stakingProgramDTO struct {
	ProgramID        string                     `json:"program_id"`
	MaxSlots         int                        `json:"max_slots"`
	UsedSlots        int                        `json:"used_slots"`
	RequiredStake    map[string]decimal.Decimal `json:"required_stake"`
	MinimumDuration  int64                      `json:"minimum_staking_duration"`
	RewardsAvailable bool                       `json:"rewards_available"`
	Agent            *stakingRecordDTO          `json:"agent"`
	MigratableTo     []string                   `json:"migratable_to"`
}

func (c *Client) GetProgramState(ctx context.Context, id domain.ProgramID) (domain.StakingProgramState, error) {
	var payload stakingProgramDTO
	if err := c.do(ctx, http.MethodGet, "/api/v2/staking/"+url.PathEscape(string(id)), nil, &payload); err != nil {
		return domain.StakingProgramState{}, err
	}

	state := domain.StakingProgramState{
		ID:               domain.ProgramID(payload.ProgramID),
		MaxSlots:         payload.MaxSlots,
		UsedSlots:        payload.UsedSlots,
		RequiredStake:    make(map[domain.Token]decimal.Decimal, len(payload.RequiredStake)),
		MinimumDuration:  time.Duration(payload.MinimumDuration) * time.Second,
		RewardsAvailable: payload.RewardsAvailable,
	}
	if state.ID == "" {
		state.ID = id
	}
	for token, amount := range payload.RequiredStake {
		state.RequiredStake[domain.Token(token)] = amount
	}
	for _, target := range payload.MigratableTo {
		state.MigratableTo = append(state.MigratableTo, domain.ProgramID(target))
	}
	if payload.Agent != nil {
		state.Agent = &domain.StakingRecord{
			StakedSince:    unixOrZero(payload.Agent.StakedSince),
			Staked:         payload.Agent.Staked,
			Evicted:        payload.Agent.Evicted,
			EvictionEndsAt: unixOrZero(payload.Agent.EvictionEndsAt),
		}
	}

	return state, nil
}

func unixOrZero(seconds int64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
