package application

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/agentctl/internal/domain"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type inMemoryInstanceRepo struct {
	mu       sync.Mutex
	instance *domain.AgentInstance
	saves    int
	saveErr  error
}

func newInstanceRepo(instance *domain.AgentInstance) *inMemoryInstanceRepo {
	return &inMemoryInstanceRepo{instance: instance}
}

func (r *inMemoryInstanceRepo) Get(ctx context.Context) (domain.AgentInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.instance == nil {
		return domain.AgentInstance{}, domain.ErrInstanceNotFound
	}
	return *r.instance, nil
}

func (r *inMemoryInstanceRepo) Save(ctx context.Context, instance domain.AgentInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.instance = &instance
	return nil
}

func (r *inMemoryInstanceRepo) current() domain.AgentInstance {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.instance == nil {
		return domain.AgentInstance{}
	}
	return *r.instance
}
