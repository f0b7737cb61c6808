package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/eligibility"
	"github.com/bnema/agentctl/internal/metrics"
	"github.com/bnema/agentctl/internal/ports"
	"github.com/bnema/agentctl/internal/store"
)

const DefaultConfirmDelay = 5 * time.Second

// PollControl is the part of the polling coordinator the orchestrator drives.
type PollControl interface {
	PausePolling(kind store.Kind)
	ResumePolling(kind store.Kind)
	IsPaused(kind store.Kind) bool
	Refresh(kind store.Kind)
}

type LifecycleDeps struct {
	Wallets     ports.WalletProvider
	Deployments ports.DeploymentService
	Instances   ports.InstanceRepository
	Stores      *store.Stores
	Polling     PollControl
	Clock       ports.Clock
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics

	// ConfirmDelay bounds the wait after the backend accepted a start.
	ConfirmDelay       time.Duration
	LowNativeThreshold decimal.Decimal
}

// Lifecycle drives the deployment state machine. Only one of Start, Stop,
// Migrate and Withdraw runs at a time; a concurrent call is rejected.
type Lifecycle struct {
	wallets      ports.WalletProvider
	deployments  ports.DeploymentService
	instances    ports.InstanceRepository
	stores       *store.Stores
	polling      PollControl
	clock        ports.Clock
	logger       zerolog.Logger
	metrics      *metrics.Metrics
	confirmDelay time.Duration
	lowNative    decimal.Decimal

	busy atomic.Bool

	mu             sync.Mutex
	slot           domain.StatusSlot
	instance       domain.AgentInstance
	hasInstance    bool
	statusWatchers map[uint64]store.Listener
	nextWatcher    uint64
	unsubscribe    func()
}

func NewLifecycle(deps LifecycleDeps) *Lifecycle {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Stores == nil {
		deps.Stores = store.New(nil)
	}

	l := &Lifecycle{
		wallets:        deps.Wallets,
		deployments:    deps.Deployments,
		instances:      deps.Instances,
		stores:         deps.Stores,
		polling:        deps.Polling,
		clock:          deps.Clock,
		logger:         deps.Logger,
		metrics:        deps.Metrics,
		confirmDelay:   deps.ConfirmDelay,
		lowNative:      deps.LowNativeThreshold,
		statusWatchers: make(map[uint64]store.Listener),
	}

	l.observeDeployment(store.KindDeployment)
	l.unsubscribe = l.stores.Deployment.Subscribe(l.observeDeployment)

	return l
}

// Close detaches the orchestrator from the deployment tracker.
func (l *Lifecycle) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
	}
}

// LoadInstance refreshes the cached agent instance from the repository. A
// missing instance is not an error.
func (l *Lifecycle) LoadInstance(ctx context.Context) error {
	_, err := l.loadInstance(ctx)
	if errors.Is(err, domain.ErrInstanceNotFound) {
		return nil
	}
	return err
}

func (l *Lifecycle) Instance() (domain.AgentInstance, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.instance, l.hasInstance
}

// Status is the effective deployment status: the override when one is set,
// otherwise the tracker status with any open eviction folded in.
func (l *Lifecycle) Status() domain.DeploymentStatus {
	status, _ := l.statuses()
	return status
}

// statuses returns the effective status and the status it was derived from
// before eviction was folded in.
func (l *Lifecycle) statuses() (effective, tracked domain.DeploymentStatus) {
	l.mu.Lock()
	slot := l.slot
	instance := l.instance
	l.mu.Unlock()

	if override, ok := slot.Override(); ok {
		return override, override
	}

	var record *domain.StakingRecord
	if programs, ok := l.stores.Staking.Get(); ok {
		if active, ok := programs.Get(instance.StakingProgram); ok {
			record = active.Agent
		}
	}

	return domain.DeriveStatus(slot.Authoritative, record, l.clock.Now()), slot.Authoritative
}

func (l *Lifecycle) Busy() bool {
	return l.busy.Load()
}

// Subscribe calls fn on every replacement of the kind's store. Deployment
// subscribers are also called when the local override changes.
func (l *Lifecycle) Subscribe(kind store.Kind, fn store.Listener) func() {
	cancelStore := l.stores.Subscribe(kind, fn)
	if kind != store.KindDeployment {
		return cancelStore
	}

	l.mu.Lock()
	id := l.nextWatcher
	l.nextWatcher++
	l.statusWatchers[id] = fn
	l.mu.Unlock()

	return func() {
		cancelStore()
		l.mu.Lock()
		delete(l.statusWatchers, id)
		l.mu.Unlock()
	}
}

// Snapshots gathers the current store values for the eligibility rules.
func (l *Lifecycle) Snapshots() eligibility.Snapshots {
	instance, _ := l.Instance()
	status, tracked := l.statuses()
	s := eligibility.Snapshots{
		Now:      l.clock.Now(),
		Instance: instance,
		Status:   status,
		Tracked:  tracked,
	}
	if balances, ok := l.stores.Balances.Get(); ok {
		s.Balances = &balances
	}
	if programs, ok := l.stores.Staking.Get(); ok {
		if programs == nil {
			programs = domain.StakingPrograms{}
		}
		s.Programs = programs
	}
	return s
}

// Verdict recomputes eligibility for action from the current snapshots.
// target is only used for migrate.
func (l *Lifecycle) Verdict(action domain.Action, target domain.ProgramID) (domain.Verdict, error) {
	return eligibility.Evaluate(action, target, l.Snapshots())
}

func (l *Lifecycle) Start(ctx context.Context) error {
	return l.run(ctx, domain.ActionStart, func(ctx context.Context, log zerolog.Logger) error {
		return l.deploy(ctx, log, domain.ActionStart, "")
	})
}

// Migrate moves the agent to program and (re)starts it there. Eligibility is
// always re-checked against the snapshots current at call time.
func (l *Lifecycle) Migrate(ctx context.Context, program domain.ProgramID) error {
	return l.run(ctx, domain.ActionMigrate, func(ctx context.Context, log zerolog.Logger) error {
		return l.deploy(ctx, log, domain.ActionMigrate, program)
	})
}

func (l *Lifecycle) Stop(ctx context.Context) error {
	return l.run(ctx, domain.ActionStop, func(ctx context.Context, log zerolog.Logger) error {
		instance, err := l.loadInstance(ctx)
		if err != nil {
			return err
		}

		snapshots := l.Snapshots()
		verdict := eligibility.CanStop(snapshots)
		switch {
		case verdict.Reason == domain.ReasonLoading:
			return l.denied(domain.ActionStop, verdict)
		case !verdict.Allowed() || !instance.HasService():
			return &domain.TransitionError{Action: domain.ActionStop, From: snapshots.Status}
		}

		l.pause(store.KindDeployment)
		defer l.resume(store.KindDeployment)

		l.setOverride(domain.DeploymentStatusStopping)
		log.Info().Str("config_id", string(instance.ConfigID)).Msg("stopping agent")
		if err := l.deployments.Stop(ctx, instance.ConfigID); err != nil {
			l.clearOverride()
			return &domain.CollaboratorError{Op: "stop service", Err: err}
		}
		l.setOverride(domain.DeploymentStatusStopped)

		return nil
	})
}

// Withdraw moves the service's funds to the given address. The agent must be
// stopped.
func (l *Lifecycle) Withdraw(ctx context.Context, to common.Address) error {
	return l.run(ctx, domain.ActionWithdraw, func(ctx context.Context, log zerolog.Logger) error {
		if to == (common.Address{}) {
			return fmt.Errorf("withdrawal address is required")
		}

		instance, err := l.loadInstance(ctx)
		if err != nil {
			return err
		}

		snapshots := l.Snapshots()
		if !instance.HasService() {
			return &domain.TransitionError{Action: domain.ActionWithdraw, From: snapshots.Status}
		}
		if verdict := eligibility.CanWithdraw(snapshots); !verdict.Allowed() {
			return l.denied(domain.ActionWithdraw, verdict)
		}

		l.pause(store.KindBalances, store.KindStaking)
		defer l.resume(store.KindBalances, store.KindStaking)

		log.Info().Str("config_id", string(instance.ConfigID)).Str("to", to.Hex()).Msg("withdrawing funds")
		if err := l.deployments.Withdraw(ctx, instance.ConfigID, to); err != nil {
			return &domain.CollaboratorError{Op: "withdraw funds", Err: err}
		}

		return nil
	})
}

func (l *Lifecycle) deploy(ctx context.Context, log zerolog.Logger, action domain.Action, target domain.ProgramID) error {
	instance, err := l.loadInstance(ctx)
	if err != nil {
		return err
	}
	if action == domain.ActionStart {
		target = instance.StakingProgram
	}

	snapshots := l.Snapshots()
	if blocksDeploy(action, snapshots.Status) {
		return &domain.TransitionError{Action: action, From: snapshots.Status}
	}

	var verdict domain.Verdict
	if action == domain.ActionMigrate {
		verdict = eligibility.CanMigrate(target, snapshots)
	} else {
		verdict = eligibility.CanStart(snapshots)
	}
	if !verdict.Allowed() {
		return l.denied(action, verdict)
	}

	l.pause(store.Kinds...)
	defer l.resume(store.Kinds...)

	l.setOverride(domain.DeploymentStatusDeploying)
	if err := l.deploySteps(ctx, log, instance, target); err != nil {
		l.clearOverride()
		return err
	}
	l.setOverride(domain.DeploymentStatusDeployed)

	return nil
}

func (l *Lifecycle) deploySteps(ctx context.Context, log zerolog.Logger, instance domain.AgentInstance, program domain.ProgramID) error {
	wallets, err := l.wallets.GetWallets(ctx)
	if err != nil {
		return &domain.CollaboratorError{Op: "get wallets", Err: err}
	}
	if _, ok := domain.FindWallet(wallets, domain.WalletRolePrimaryMultisig, instance.HomeNetwork); !ok {
		log.Info().Str("network", string(instance.HomeNetwork)).Msg("creating primary multisig")
		if _, err := l.wallets.CreateMultisig(ctx, instance.HomeNetwork); err != nil {
			return &domain.CollaboratorError{Op: "create multisig", Err: err}
		}
	}

	ref, err := l.deployments.CreateOrUpdate(ctx, domain.ServiceParams{
		ConfigID:       instance.ConfigID,
		AgentType:      instance.AgentType,
		HomeNetwork:    instance.HomeNetwork,
		StakingProgram: program,
	})
	if err != nil {
		return &domain.CollaboratorError{Op: "create or update service", Err: err}
	}

	instance.ConfigID = ref.ConfigID
	instance.StakingProgram = program
	instance.UpdatedAt = l.clock.Now()
	if err := l.instances.Save(ctx, instance); err != nil {
		return &domain.CollaboratorError{Op: "save agent instance", Err: err}
	}
	l.cacheInstance(instance)

	log.Info().Str("config_id", string(ref.ConfigID)).Str("program", string(program)).Msg("starting service")
	if err := l.deployments.Start(ctx, ref.ConfigID); err != nil {
		return &domain.CollaboratorError{Op: "start service", Err: err}
	}

	if l.confirmDelay > 0 {
		select {
		case <-l.clock.After(l.confirmDelay):
		case <-ctx.Done():
			return &domain.CollaboratorError{Op: "await deployment confirmation", Err: ctx.Err()}
		}
	}

	return nil
}

// run serializes lifecycle operations and records their outcome.
func (l *Lifecycle) run(ctx context.Context, action domain.Action, fn func(context.Context, zerolog.Logger) error) error {
	if !l.busy.CompareAndSwap(false, true) {
		l.metrics.ObserveLifecycleOp(string(action), "rejected")
		return &domain.TransitionError{Action: action, From: l.Status(), InFlight: true}
	}
	defer l.busy.Store(false)

	log := l.logger.With().Str("op_id", uuid.NewString()).Str("action", string(action)).Logger()
	log.Info().Msg("lifecycle operation started")

	err := fn(ctx, log)
	switch {
	case err == nil:
		l.metrics.ObserveLifecycleOp(string(action), "ok")
		log.Info().Msg("lifecycle operation finished")
	case errors.Is(err, domain.ErrEligibilityDenied):
		l.metrics.ObserveLifecycleOp(string(action), "denied")
		log.Info().Err(err).Msg("lifecycle operation denied")
	default:
		l.metrics.ObserveLifecycleOp(string(action), "error")
		log.Error().Err(err).Msg("lifecycle operation failed")
	}

	return err
}

func (l *Lifecycle) denied(action domain.Action, verdict domain.Verdict) error {
	l.metrics.ObserveDenial(string(action), string(verdict.Reason))
	return &domain.EligibilityError{Action: action, Verdict: verdict}
}

func (l *Lifecycle) loadInstance(ctx context.Context) (domain.AgentInstance, error) {
	instance, err := l.instances.Get(ctx)
	if err != nil {
		return domain.AgentInstance{}, fmt.Errorf("load agent instance: %w", err)
	}
	l.cacheInstance(instance)
	return instance, nil
}

func (l *Lifecycle) cacheInstance(instance domain.AgentInstance) {
	l.mu.Lock()
	l.instance = instance
	l.hasInstance = true
	l.mu.Unlock()
}

func (l *Lifecycle) pause(kinds ...store.Kind) {
	if l.polling == nil {
		return
	}
	for _, kind := range kinds {
		l.polling.PausePolling(kind)
	}
}

// resume releases the pauses taken by pause and asks for a fresh tick of
// each kind so the stores reconcile with the backend.
func (l *Lifecycle) resume(kinds ...store.Kind) {
	if l.polling == nil {
		return
	}
	for _, kind := range kinds {
		l.polling.ResumePolling(kind)
	}
	for _, kind := range kinds {
		l.polling.Refresh(kind)
	}
}

func (l *Lifecycle) setOverride(status domain.DeploymentStatus) {
	l.mu.Lock()
	l.slot.SetOverride(status)
	watchers := l.watchersLocked()
	l.mu.Unlock()

	for _, fn := range watchers {
		fn(store.KindDeployment)
	}
}

func (l *Lifecycle) clearOverride() {
	l.mu.Lock()
	l.slot.ClearOverride()
	watchers := l.watchersLocked()
	l.mu.Unlock()

	for _, fn := range watchers {
		fn(store.KindDeployment)
	}
}

func (l *Lifecycle) observeDeployment(store.Kind) {
	status, ok := l.stores.Deployment.Get()
	if !ok {
		status = domain.DeploymentStatusUnknown
	}

	l.mu.Lock()
	l.slot.Observe(status)
	l.mu.Unlock()
}

func (l *Lifecycle) watchersLocked() []store.Listener {
	ids := make([]uint64, 0, len(l.statusWatchers))
	for id := range l.statusWatchers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]store.Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.statusWatchers[id])
	}
	return out
}

// blocksDeploy reports states from which start or migrate is not a valid
// transition at all. Unknown and evicted fall through to the eligibility
// rules, which explain them.
func blocksDeploy(action domain.Action, status domain.DeploymentStatus) bool {
	if status.IsTransitioning() {
		return true
	}
	return action == domain.ActionStart && status == domain.DeploymentStatusDeployed
}
