package store

import (
	"time"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/metrics"
)

// Stores groups the deployment status tracker, the balance snapshot store and
// the staking program registry.
type Stores struct {
	Deployment *Snapshot[domain.DeploymentStatus]
	Balances   *Snapshot[domain.BalanceSet]
	Staking    *Snapshot[domain.StakingPrograms]
}

func New(m *metrics.Metrics) *Stores {
	s := &Stores{
		Deployment: NewSnapshot[domain.DeploymentStatus](KindDeployment, nil),
		Balances:   NewSnapshot[domain.BalanceSet](KindBalances, nil),
		Staking:    NewSnapshot(KindStaking, cloneStakingPrograms),
	}
	if m != nil {
		for _, kind := range Kinds {
			s.Subscribe(kind, func(kind Kind) { m.ObserveStoreReplaced(string(kind)) })
		}
	}
	return s
}

func (s *Stores) DeploymentSnapshot() (domain.DeploymentSnapshot, bool) {
	status, ok := s.Deployment.Get()
	if !ok {
		return domain.DeploymentSnapshot{}, false
	}
	return domain.DeploymentSnapshot{Status: status, ObservedAt: s.Deployment.ObservedAt()}, true
}

func (s *Stores) Subscribe(kind Kind, fn Listener) func() {
	switch kind {
	case KindDeployment:
		return s.Deployment.Subscribe(fn)
	case KindBalances:
		return s.Balances.Subscribe(fn)
	case KindStaking:
		return s.Staking.Subscribe(fn)
	default:
		return func() {}
	}
}

// SubscribeAll registers fn on every store and returns a single unsubscribe.
func (s *Stores) SubscribeAll(fn Listener) func() {
	cancels := make([]func(), 0, len(Kinds))
	for _, kind := range Kinds {
		cancels = append(cancels, s.Subscribe(kind, fn))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func (s *Stores) Clear(kind Kind) {
	switch kind {
	case KindDeployment:
		s.Deployment.Clear()
	case KindBalances:
		s.Balances.Clear()
	case KindStaking:
		s.Staking.Clear()
	}
}

func (s *Stores) Loaded(kind Kind) bool {
	switch kind {
	case KindDeployment:
		_, ok := s.Deployment.Get()
		return ok
	case KindBalances:
		_, ok := s.Balances.Get()
		return ok
	case KindStaking:
		_, ok := s.Staking.Get()
		return ok
	default:
		return false
	}
}

func (s *Stores) Err(kind Kind) error {
	switch kind {
	case KindDeployment:
		return s.Deployment.Err()
	case KindBalances:
		return s.Balances.Err()
	case KindStaking:
		return s.Staking.Err()
	default:
		return nil
	}
}

func (s *Stores) ObservedAt(kind Kind) time.Time {
	switch kind {
	case KindDeployment:
		return s.Deployment.ObservedAt()
	case KindBalances:
		return s.Balances.ObservedAt()
	case KindStaking:
		return s.Staking.ObservedAt()
	default:
		return time.Time{}
	}
}

func cloneStakingPrograms(programs domain.StakingPrograms) domain.StakingPrograms {
	if programs == nil {
		return nil
	}
	out := make(domain.StakingPrograms, len(programs))
	for id, program := range programs {
		out[id] = program.Clone()
	}
	return out
}
