package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/ports"
)

// Sources produces the values the poll loops write into the stores.
type Sources struct {
	wallets     ports.WalletProvider
	deployments ports.DeploymentService
	balances    ports.BalanceService
	staking     ports.StakingRegistry
	instances   ports.InstanceRepository
	programs    []domain.ProgramID
}

// NewSources fetches the given programs on every staking tick in addition to
// the instance's selected program.
func NewSources(
	wallets ports.WalletProvider,
	deployments ports.DeploymentService,
	balances ports.BalanceService,
	staking ports.StakingRegistry,
	instances ports.InstanceRepository,
	programs []domain.ProgramID,
) *Sources {
	return &Sources{
		wallets:     wallets,
		deployments: deployments,
		balances:    balances,
		staking:     staking,
		instances:   instances,
		programs:    slices.Clone(programs),
	}
}

// Deployment reports NotDeployed until the backend has created a service for
// the instance.
func (s *Sources) Deployment(ctx context.Context) (domain.DeploymentStatus, error) {
	instance, found, err := s.instance(ctx)
	if err != nil {
		return "", err
	}
	if !found || !instance.HasService() {
		return domain.DeploymentStatusNotDeployed, nil
	}

	status, err := s.deployments.GetStatus(ctx, instance.ConfigID)
	if err != nil {
		return "", fmt.Errorf("get deployment status: %w", err)
	}
	return status, nil
}

func (s *Sources) Balances(ctx context.Context) (domain.BalanceSet, error) {
	wallets, err := s.wallets.GetWallets(ctx)
	if err != nil {
		return domain.BalanceSet{}, fmt.Errorf("get wallets: %w", err)
	}
	if len(wallets) == 0 {
		return domain.NewBalanceSet(nil)
	}

	entries, err := s.balances.GetBalances(ctx, wallets)
	if err != nil {
		return domain.BalanceSet{}, fmt.Errorf("get balances: %w", err)
	}

	set, err := domain.NewBalanceSet(entries)
	if err != nil {
		return domain.BalanceSet{}, fmt.Errorf("build balance set: %w", err)
	}
	return set, nil
}

// Staking fetches every tracked program concurrently. One failed program
// fails the whole tick so the store never mixes ticks.
func (s *Sources) Staking(ctx context.Context) (domain.StakingPrograms, error) {
	ids, err := s.programIDs(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	programs := make(domain.StakingPrograms, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			state, err := s.staking.GetProgramState(gctx, id)
			if err != nil {
				return fmt.Errorf("get staking program %s: %w", id, err)
			}
			if state.ID == "" {
				state.ID = id
			}

			mu.Lock()
			programs[id] = state
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return programs, nil
}

func (s *Sources) programIDs(ctx context.Context) ([]domain.ProgramID, error) {
	ids := slices.Clone(s.programs)

	instance, found, err := s.instance(ctx)
	if err != nil {
		return nil, err
	}
	if found && instance.StakingProgram != "" {
		ids = append(ids, instance.StakingProgram)
	}

	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (s *Sources) instance(ctx context.Context) (domain.AgentInstance, bool, error) {
	instance, err := s.instances.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInstanceNotFound) {
			return domain.AgentInstance{}, false, nil
		}
		return domain.AgentInstance{}, false, fmt.Errorf("load agent instance: %w", err)
	}
	return instance, true, nil
}
