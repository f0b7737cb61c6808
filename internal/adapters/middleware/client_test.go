package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/agentctl/internal/domain"
)

const (
	signerHex   = "0x1111111111111111111111111111111111111111"
	multisigHex = "0x2222222222222222222222222222222222222222"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &Client{BaseURL: server.URL, HTTPClient: server.Client()}
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestGetWalletsDecodesRolesAndNetworks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wallet", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, []map[string]string{
			{"address": signerHex, "role": "primary-signer", "chain": "gnosis"},
			{"address": multisigHex, "role": "primary-multisig", "chain": "gnosis"},
		})
	})
	client := newTestClient(t, mux)

	wallets, err := client.GetWallets(context.Background())

	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, common.HexToAddress(signerHex), wallets[0].Address)
	assert.Equal(t, domain.WalletRolePrimaryMultisig, wallets[1].Role)
	assert.Equal(t, domain.Network("gnosis"), wallets[1].Network)
}

func TestGetWalletsRejectsUnknownRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wallet", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, []map[string]string{{"address": signerHex, "role": "cold", "chain": "gnosis"}})
	})
	client := newTestClient(t, mux)

	_, err := client.GetWallets(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown wallet role "cold"`)
}

func TestCreateMultisigPostsChain(t *testing.T) {
	var got map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/wallet/safe", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, map[string]string{"address": multisigHex, "role": "primary-multisig", "chain": "gnosis"})
	})
	client := newTestClient(t, mux)

	wallet, err := client.CreateMultisig(context.Background(), "gnosis")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"chain": "gnosis"}, got)
	assert.Equal(t, domain.WalletRolePrimaryMultisig, wallet.Role)
}

func TestGetStatusMapsBackendCodes(t *testing.T) {
	tests := []struct {
		code int
		want domain.DeploymentStatus
	}{
		{code: 0, want: domain.DeploymentStatusNotDeployed},
		{code: 1, want: domain.DeploymentStatusNotDeployed},
		{code: 2, want: domain.DeploymentStatusDeploying},
		{code: 3, want: domain.DeploymentStatusDeployed},
		{code: 4, want: domain.DeploymentStatusStopping},
		{code: 5, want: domain.DeploymentStatusStopped},
		{code: 6, want: domain.DeploymentStatusNotDeployed},
	}

	for _, tt := range tests {
		t.Run(tt.want.Label(), func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v2/service/sc-1/deployment", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, map[string]int{"status": tt.code})
			})
			client := newTestClient(t, mux)

			status, err := client.GetStatus(context.Background(), "sc-1")

			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestGetStatusTreatsMissingServiceAsNotDeployed(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	status, err := client.GetStatus(context.Background(), "sc-missing")

	require.NoError(t, err)
	assert.Equal(t, domain.DeploymentStatusNotDeployed, status)
}

func TestGetStatusRejectsUnknownCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/service/sc-1/deployment", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]int{"status": 42})
	})
	client := newTestClient(t, mux)

	status, err := client.GetStatus(context.Background(), "sc-1")

	require.Error(t, err)
	assert.Equal(t, domain.DeploymentStatusUnknown, status)
}

func TestCreateOrUpdateSendsServiceParams(t *testing.T) {
	var got serviceRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/service", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, map[string]string{"service_config_id": "sc-new"})
	})
	client := newTestClient(t, mux)

	ref, err := client.CreateOrUpdate(context.Background(), domain.ServiceParams{
		AgentType:      "trader",
		HomeNetwork:    "gnosis",
		StakingProgram: "alpha",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ConfigID("sc-new"), ref.ConfigID)
	assert.Equal(t, serviceRequest{AgentType: "trader", HomeChain: "gnosis", StakingProgramID: "alpha"}, got)
}

func TestStartStopAndWithdrawHitServiceRoutes(t *testing.T) {
	var calls []string
	var withdrawal map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/service/sc-1/deployment/start", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
	})
	mux.HandleFunc("POST /api/v2/service/sc-1/deployment/stop", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
	})
	mux.HandleFunc("POST /api/v2/service/sc-1/onchain/withdraw", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&withdrawal))
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, client.Start(ctx, "sc-1"))
	require.NoError(t, client.Stop(ctx, "sc-1"))
	require.NoError(t, client.Withdraw(ctx, "sc-1", common.HexToAddress(signerHex)))

	assert.Equal(t, []string{
		"/api/v2/service/sc-1/deployment/start",
		"/api/v2/service/sc-1/deployment/stop",
		"/api/v2/service/sc-1/onchain/withdraw",
	}, calls)
	assert.Equal(t, common.HexToAddress(signerHex).Hex(), withdrawal["withdrawal_address"])
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/service/sc-1/deployment/start", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "docker unavailable", http.StatusInternalServerError)
	})
	client := newTestClient(t, mux)

	err := client.Start(context.Background(), "sc-1")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "docker unavailable", statusErr.Body)
	assert.False(t, IsNotFound(err))
}

func TestGetBalancesKeepsExactAmounts(t *testing.T) {
	var got struct {
		Wallets []walletDTO `json:"wallets"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/balances", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[
			{"address":"` + multisigHex + `","chain":"gnosis","token":"OLAS","amount":"20.000000000000000001","native":false,"staked":false},
			{"address":"` + multisigHex + `","chain":"gnosis","token":"OLAS","amount":"100","native":false,"staked":true},
			{"address":"` + multisigHex + `","chain":"gnosis","token":"xDAI","amount":"0.5","native":true,"staked":false}
		]`))
	})
	client := newTestClient(t, mux)
	wallets := []domain.WalletRef{{
		Address: common.HexToAddress(multisigHex),
		Role:    domain.WalletRolePrimaryMultisig,
		Network: "gnosis",
	}}

	snapshots, err := client.GetBalances(context.Background(), wallets)

	require.NoError(t, err)
	require.Len(t, got.Wallets, 1)
	assert.Equal(t, "primary-multisig", got.Wallets[0].Role)
	require.Len(t, snapshots, 3)
	assert.True(t, snapshots[0].Amount.Equal(decimal.RequireFromString("20.000000000000000001")))
	assert.Equal(t, domain.WalletRolePrimaryMultisig, snapshots[0].Wallet.Role)
	assert.True(t, snapshots[1].Staked)
	assert.True(t, snapshots[2].Native)
}

func TestGetProgramStateConvertsUnits(t *testing.T) {
	stakedSince := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/staking/beta", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"program_id":               "beta",
			"max_slots":                10,
			"used_slots":               3,
			"required_stake":           map[string]string{"OLAS": "100.5"},
			"minimum_staking_duration": 3 * 24 * 60 * 60,
			"rewards_available":        true,
			"agent": map[string]any{
				"staked_since": stakedSince.Unix(),
				"staked":       true,
				"evicted":      false,
			},
			"migratable_to": []string{"gamma"},
		})
	})
	client := newTestClient(t, mux)

	state, err := client.GetProgramState(context.Background(), "beta")

	require.NoError(t, err)
	assert.Equal(t, domain.ProgramID("beta"), state.ID)
	assert.Equal(t, 10, state.MaxSlots)
	assert.Equal(t, 3, state.UsedSlots)
	assert.True(t, state.RequiredStake["OLAS"].Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, 72*time.Hour, state.MinimumDuration)
	assert.True(t, state.RewardsAvailable)
	require.NotNil(t, state.Agent)
	assert.True(t, state.Agent.StakedSince.Equal(stakedSince))
	assert.True(t, state.Agent.EvictionEndsAt.IsZero())
	assert.True(t, state.CanMigrateTo("gamma"))
}

func TestGetProgramStateFillsMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/staking/alpha", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"max_slots": 1})
	})
	client := newTestClient(t, mux)

	state, err := client.GetProgramState(context.Background(), "alpha")

	require.NoError(t, err)
	assert.Equal(t, domain.ProgramID("alpha"), state.ID)
	assert.Nil(t, state.Agent)
}

func TestRequestHonoursCanceledContext(t *testing.T) {
	client := &Client{BaseURL: "http://127.0.0.1:1"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetWallets(ctx)

	require.ErrorIs(t, err, context.Canceled)
}
