package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fakeSignerHex   = "0x1111111111111111111111111111111111111111"
	fakeMultisigHex = "0x2222222222222222222222222222222222222222"
)

// fakeMiddleware is an in-memory stand-in for the deployment backend.
type fakeMiddleware struct {
	mu          sync.Mutex
	olas        string
	statusCode  int
	serviceID   string
	calls       []string
	withdrawnTo string
}

func newFakeMiddleware(t *testing.T, olas string) *fakeMiddleware {
	t.Helper()

	f := &fakeMiddleware{olas: olas}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wallet", func(w http.ResponseWriter, _ *http.Request) {
		writeFakeJSON(w, []map[string]string{
			{"address": fakeSignerHex, "role": "primary-signer", "chain": "gnosis"},
			{"address": fakeMultisigHex, "role": "primary-multisig", "chain": "gnosis"},
		})
	})
	mux.HandleFunc("POST /api/v2/balances", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		olas := f.olas
		f.mu.Unlock()
		writeFakeJSON(w, []map[string]any{
			{"address": fakeMultisigHex, "chain": "gnosis", "token": "OLAS", "amount": olas},
			{"address": fakeMultisigHex, "chain": "gnosis", "token": "xDAI", "amount": "2", "native": true},
		})
	})
	mux.HandleFunc("GET /api/v2/staking/{program}", func(w http.ResponseWriter, r *http.Request) {
		writeFakeJSON(w, map[string]any{
			"program_id":               r.PathValue("program"),
			"max_slots":                10,
			"used_slots":               2,
			"required_stake":           map[string]string{"OLAS": "100"},
			"minimum_staking_duration": 3600,
			"rewards_available":        true,
		})
	})
	mux.HandleFunc("GET /api/v2/service/{id}/deployment", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		code := f.statusCode
		f.mu.Unlock()
		writeFakeJSON(w, map[string]int{"status": code})
	})
	mux.HandleFunc("POST /api/v2/service", func(w http.ResponseWriter, _ *http.Request) {
		f.record("create")
		f.mu.Lock()
		f.serviceID = "sc-1"
		f.mu.Unlock()
		writeFakeJSON(w, map[string]string{"service_config_id": "sc-1"})
	})
	mux.HandleFunc("POST /api/v2/service/{id}/deployment/start", func(w http.ResponseWriter, _ *http.Request) {
		f.record("start")
		f.mu.Lock()
		f.statusCode = 3
		f.mu.Unlock()
	})
	mux.HandleFunc("POST /api/v2/service/{id}/deployment/stop", func(w http.ResponseWriter, _ *http.Request) {
		f.record("stop")
		f.mu.Lock()
		f.statusCode = 5
		f.mu.Unlock()
	})
	mux.HandleFunc("POST /api/v2/service/{id}/onchain/withdraw", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.record("withdraw")
		f.mu.Lock()
		f.withdrawnTo = body["withdrawal_address"]
		f.mu.Unlock()
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("AGENTCTL_MIDDLEWARE_URL", server.URL)
	t.Setenv("AGENTCTL_LIFECYCLE_CONFIRM_DELAY", "0s")
	t.Setenv("AGENTCTL_STAKING_PROGRAMS", "alpha,beta")
	t.Setenv("AGENTCTL_CONFIG", "")
	t.Setenv("LOG_LEVEL", "error")
	return f
}

func (f *fakeMiddleware) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeMiddleware) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func writeFakeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func selectTrader(t *testing.T, home string) {
	t.Helper()
	_, _, err := executeCLI(t, home, "select", "--agent-type", "trader", "--network", "gnosis", "--program", "alpha")
	require.NoError(t, err)
}

func TestVersionPrintsVersion(t *testing.T) {
	newFakeMiddleware(t, "150")

	stdout, _, err := executeCLI(t, t.TempDir(), "version")

	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestStatusWithoutSelection(t *testing.T) {
	newFakeMiddleware(t, "150")

	stdout, _, err := executeCLI(t, t.TempDir(), "status")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No agent selected.")
}

func TestSelectThenStatus(t *testing.T) {
	newFakeMiddleware(t, "150")
	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "select", "--agent-type", "trader", "--network", "gnosis", "--program", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Selected trader on gnosis in staking program alpha")

	stdout, _, err = executeCLI(t, home, "status")

	require.NoError(t, err)
	assert.Contains(t, stdout, "trader on gnosis")
	assert.Contains(t, stdout, "status: not deployed")
	assert.Contains(t, stdout, "gnosis OLAS: 150")
	assert.Contains(t, stdout, "start: allowed")
	assert.FileExists(t, filepath.Join(home, ".agentctl", "instance.toml"))
}

func TestStatusJSONOutput(t *testing.T) {
	newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	stdout, _, err := executeCLI(t, home, "status", "--json")

	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"staking_program": "alpha"`)
}

func TestStartDeploysAndPersistsService(t *testing.T) {
	fake := newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	stdout, _, err := executeCLI(t, home, "start")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Agent started. Agent status: deployed")
	assert.Equal(t, []string{"create", "start"}, fake.recorded())

	data, err := os.ReadFile(filepath.Join(home, ".agentctl", "instance.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sc-1")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: deployed")
	assert.Contains(t, stdout, "stop: allowed")
}

func TestStartDeniedExplainsReason(t *testing.T) {
	fake := newFakeMiddleware(t, "50")
	home := t.TempDir()
	selectTrader(t, home)

	_, _, err := executeCLI(t, home, "start")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient_stake")
	assert.Contains(t, err.Error(), "requires 100 OLAS but only 50 OLAS")
	assert.Empty(t, fake.recorded())
}

func TestStopWhenNotRunningIsInvalidTransition(t *testing.T) {
	newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	_, _, err := executeCLI(t, home, "stop")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot stop while agent is not deployed")
}

func TestStartThenStopThenWithdraw(t *testing.T) {
	fake := newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	_, _, err := executeCLI(t, home, "start")
	require.NoError(t, err)
	stdout, _, err := executeCLI(t, home, "stop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Agent stopped. Agent status: stopped")

	_, _, err = executeCLI(t, home, "withdraw", "--to", fakeSignerHex)
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "start", "stop", "withdraw"}, fake.recorded())
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, fakeSignerHex, fake.withdrawnTo)
}

func TestWithdrawRequiresToFlag(t *testing.T) {
	newFakeMiddleware(t, "150")

	_, _, err := executeCLI(t, t.TempDir(), "withdraw")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"to\" not set")
}

func TestEligibilityForSingleAction(t *testing.T) {
	newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	stdout, _, err := executeCLI(t, home, "eligibility", "--action", "migrate", "--program", "alpha")

	require.NoError(t, err)
	assert.Contains(t, stdout, "migrate to alpha: This staking program is already active for the agent.")
}

func TestEligibilityMigrateNeedsProgram(t *testing.T) {
	newFakeMiddleware(t, "150")
	home := t.TempDir()
	selectTrader(t, home)

	_, _, err := executeCLI(t, home, "eligibility", "--action", "migrate")

	require.Error(t, err)
}

func TestMigrateRequiresProgramArgument(t *testing.T) {
	newFakeMiddleware(t, "150")

	_, _, err := executeCLI(t, t.TempDir(), "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
