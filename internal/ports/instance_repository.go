package ports

import (
	"context"

	"github.com/bnema/agentctl/internal/domain"
)

type InstanceRepository interface {
	Get(ctx context.Context) (domain.AgentInstance, error)
	Save(ctx context.Context, instance domain.AgentInstance) error
}
