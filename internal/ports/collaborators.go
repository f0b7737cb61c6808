package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bnema/agentctl/internal/domain"
)

type WalletProvider interface {
	GetWallets(ctx context.Context) ([]domain.WalletRef, error)
	// CreateMultisig is a no-op returning the existing wallet when one is
	// already registered for network.
	CreateMultisig(ctx context.Context, network domain.Network) (domain.WalletRef, error)
}

type DeploymentService interface {
	GetStatus(ctx context.Context, id domain.ConfigID) (domain.DeploymentStatus, error)
	CreateOrUpdate(ctx context.Context, params domain.ServiceParams) (domain.InstanceRef, error)
	Start(ctx context.Context, id domain.ConfigID) error
	Stop(ctx context.Context, id domain.ConfigID) error
	Withdraw(ctx context.Context, id domain.ConfigID, to common.Address) error
}

type BalanceService interface {
	GetBalances(ctx context.Context, wallets []domain.WalletRef) ([]domain.BalanceSnapshot, error)
}

type StakingRegistry interface {
	GetProgramState(ctx context.Context, id domain.ProgramID) (domain.StakingProgramState, error)
}
