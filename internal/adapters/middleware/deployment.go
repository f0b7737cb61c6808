package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bnema/agentctl/internal/domain"
)

// Backend deployment codes.
const (
	deploymentCreated   = 0
	deploymentBuilt     = 1
	deploymentDeploying = 2
	deploymentDeployed  = 3
	deploymentStopping  = 4
	deploymentStopped   = 5
	deploymentDeleted   = 6
)

func statusFromCode(code int) (domain.DeploymentStatus, error) {
	switch code {
	case deploymentCreated, deploymentBuilt, deploymentDeleted:
		return domain.DeploymentStatusNotDeployed, nil
	case deploymentDeploying:
		return domain.DeploymentStatusDeploying, nil
	case deploymentDeployed:
		return domain.DeploymentStatusDeployed, nil
	case deploymentStopping:
		return domain.DeploymentStatusStopping, nil
	case deploymentStopped:
		return domain.DeploymentStatusStopped, nil
	default:
		return domain.DeploymentStatusUnknown, fmt.Errorf("unknown deployment status code %d", code)
	}
}

type serviceRequest struct {
	ServiceConfigID  string `json:"service_config_id,omitempty"`
	AgentType        string `json:"agent_type"`
	HomeChain        string `json:"home_chain"`
	StakingProgramID string `json:"staking_program_id"`
}

type serviceResponse struct {
	ServiceConfigID string `json:"service_config_id"`
}

func servicePath(id domain.ConfigID, suffix string) string {
	return "/api/v2/service/" + url.PathEscape(string(id)) + suffix
}

// GetStatus maps a missing deployment to NotDeployed.
func (c *Client) GetStatus(ctx context.Context, id domain.ConfigID) (domain.DeploymentStatus, error) {
	var payload struct {
		Status *int `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, servicePath(id, "/deployment"), nil, &payload); err != nil {
		if IsNotFound(err) {
			return domain.DeploymentStatusNotDeployed, nil
		}
		return domain.DeploymentStatusUnknown, err
	}
	if payload.Status == nil {
		return domain.DeploymentStatusUnknown, errors.New("deployment response missing status")
	}

	return statusFromCode(*payload.Status)
}

func (c *Client) CreateOrUpdate(ctx context.Context, params domain.ServiceParams) (domain.InstanceRef, error) {
	request := serviceRequest{
		ServiceConfigID:  string(params.ConfigID),
		AgentType:        string(params.AgentType),
		HomeChain:        string(params.HomeNetwork),
		StakingProgramID: string(params.StakingProgram),
	}

	var payload serviceResponse
	if err := c.do(ctx, http.MethodPost, "/api/v2/service", request, &payload); err != nil {
		return domain.InstanceRef{}, err
	}
	if payload.ServiceConfigID == "" {
		return domain.InstanceRef{}, errors.New("service response missing service_config_id")
	}

	return domain.InstanceRef{ConfigID: domain.ConfigID(payload.ServiceConfigID)}, nil
}

func (c *Client) Start(ctx context.Context, id domain.ConfigID) error {
	return c.do(ctx, http.MethodPost, servicePath(id, "/deployment/start"), nil, nil)
}

func (c *Client) Stop(ctx context.Context, id domain.ConfigID) error {
	return c.do(ctx, http.MethodPost, servicePath(id, "/deployment/stop"), nil, nil)
}

func (c *Client) Withdraw(ctx context.Context, id domain.ConfigID, to common.Address) error {
	request := map[string]string{"withdrawal_address": to.Hex()}
	return c.do(ctx, http.MethodPost, servicePath(id, "/onchain/withdraw"), request, nil)
}
