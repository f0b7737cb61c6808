package application

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/eligibility"
	"github.com/bnema/agentctl/internal/store"
)

func (l *Lifecycle) Overview() Overview {
	snapshots := l.Snapshots()

	l.mu.Lock()
	slot := l.slot
	hasInstance := l.hasInstance
	l.mu.Unlock()
	override, _ := slot.Override()

	overview := Overview{
		Now:           snapshots.Now,
		Instance:      snapshots.Instance,
		HasInstance:   hasInstance,
		Status:        snapshots.Status,
		Authoritative: slot.Authoritative,
		Override:      override,
		Busy:          l.Busy(),
		Stores:        l.storeStates(),
	}

	if snapshots.Balances != nil {
		overview.Balances = snapshots.Balances.Entries()
		overview.LowBalances = lowNativeBalances(*snapshots.Balances, l.lowNative)
	}
	for _, id := range snapshots.Programs.IDs() {
		overview.Programs = append(overview.Programs, snapshots.Programs[id])
	}

	overview.Verdicts = []ActionVerdict{
		{Action: domain.ActionStart, Target: snapshots.Instance.StakingProgram, Verdict: eligibility.CanStart(snapshots)},
		{Action: domain.ActionStop, Verdict: eligibility.CanStop(snapshots)},
		{Action: domain.ActionWithdraw, Verdict: eligibility.CanWithdraw(snapshots)},
	}
	for _, id := range snapshots.Programs.IDs() {
		if id == snapshots.Instance.StakingProgram {
			continue
		}
		overview.Verdicts = append(overview.Verdicts, ActionVerdict{
			Action:  domain.ActionMigrate,
			Target:  id,
			Verdict: eligibility.CanMigrate(id, snapshots),
		})
	}

	return overview
}

func (l *Lifecycle) storeStates() []StoreState {
	states := make([]StoreState, 0, len(store.Kinds))
	for _, kind := range store.Kinds {
		state := StoreState{
			Kind:       kind,
			Loaded:     l.stores.Loaded(kind),
			ObservedAt: l.stores.ObservedAt(kind),
			Err:        l.stores.Err(kind),
		}
		if l.polling != nil {
			state.Paused = l.polling.IsPaused(kind)
		}
		states = append(states, state)
	}
	return states
}

func lowNativeBalances(balances domain.BalanceSet, threshold decimal.Decimal) []LowBalance {
	if !threshold.IsPositive() {
		return nil
	}

	var networks []domain.Network
	for _, entry := range balances.Entries() {
		if entry.Native && !slices.Contains(networks, entry.Network) {
			networks = append(networks, entry.Network)
		}
	}
	slices.Sort(networks)

	var low []LowBalance
	for _, network := range networks {
		token, _ := balances.NativeToken(network)
		if balances.IsLow(network, token, threshold) {
			low = append(low, LowBalance{
				Network:   network,
				Token:     token,
				Available: balances.Available(network, token),
				Threshold: threshold,
			})
		}
	}
	return low
}
