package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.Set("project_root", projectRoot)
	return v
}

func TestProvider_Defaults(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("INTEGRATOR_ID", "")
	dir := t.TempDir()

	cfg, err := Provider(newViper(dir))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Empty(t, cfg.ConfigFile)
	assert.Empty(t, cfg.Networks)
	assert.Equal(t, config.DefaultStatusPolicy(), cfg.Status)
	assert.Equal(t, config.DefaultSwapConfig(), cfg.Swap)
	assert.Equal(t, 1.0, cfg.Route.Slippage)
	assert.True(t, cfg.Route.EnableExpress)
	assert.NotEmpty(t, cfg.Hook.Provider)
}

func TestProvider_ProjectFile(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("INTEGRATOR_ID", "")
	t.Setenv("HOOKROUTE_TEST_RPC_KEY", "secret")
	dir := t.TempDir()

	writeFile(t, dir, ConfigFileName, `
explorer_url = "https://explorer.example"

[api]
base_url = "https://api.example"
integrator_id = "from-file"
timeout = "15s"

[rpc_endpoints]
arbitrum = "https://arb.example/${HOOKROUTE_TEST_RPC_KEY}"
base = "https://base.example"
optimism = "https://op.example"
"10000" = "https://custom.example"

[chain_ids]
optimism = 10

[status]
poll_interval = "1s"
not_found_interval = "2s"
not_found_limit = 3
max_polls = 40

[swap]
pool_fee = 3000
deadline = "1h"

[hook]
provider = "Vault"
description = "Deposit"

[route]
slippage = 0.5
enable_express = false
receive_gas_on_destination = true
`)

	cfg, err := Provider(newViper(dir))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFile)
	assert.Equal(t, "https://explorer.example", cfg.ExplorerURL)
	assert.Equal(t, config.APIConfig{
		BaseURL:      "https://api.example",
		IntegratorID: "from-file",
		Timeout:      15 * time.Second,
	}, cfg.API)

	require.Len(t, cfg.Networks, 4)
	assert.Equal(t, "https://arb.example/secret", cfg.Networks[domain.ChainIDArbitrum].RPCURL)
	assert.Equal(t, "base", cfg.Networks[domain.ChainIDBase].Name)
	assert.Equal(t, "optimism", cfg.Networks[10].Name)
	assert.Equal(t, "https://custom.example", cfg.Networks[10000].RPCURL)

	assert.Equal(t, config.StatusPolicy{
		PollInterval:     time.Second,
		NotFoundInterval: 2 * time.Second,
		NotFoundLimit:    3,
		MaxPolls:         40,
	}, cfg.Status)
	assert.Equal(t, config.SwapConfig{PoolFee: 3000, Deadline: time.Hour}, cfg.Swap)
	assert.Equal(t, "Vault", cfg.Hook.Provider)
	assert.Equal(t, "Deposit", cfg.Hook.Description)
	assert.NotEmpty(t, cfg.Hook.LogoURI)
	assert.Equal(t, config.RouteDefaults{Slippage: 0.5, ReceiveGasOnDestination: true}, cfg.Route)
}

func TestProvider_EnvOverridesFile(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")
	t.Setenv("PRIVATE_KEY", "0xabc")
	t.Setenv("INTEGRATOR_ID", "from-env")
	dir := t.TempDir()

	writeFile(t, dir, ConfigFileName, `
[api]
integrator_id = "from-file"
`)

	cfg, err := Provider(newViper(dir))
	require.NoError(t, err)
	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.Equal(t, "from-env", cfg.API.IntegratorID)

	v := newViper(dir)
	v.Set("private_key", "0xdef")
	v.Set("api_url", "https://override.example")
	v.Set("max_polls", 7)
	cfg, err = Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "0xdef", cfg.PrivateKey)
	assert.Equal(t, "https://override.example", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.Status.MaxPolls)
}

func TestProvider_DotEnvExpansion(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")
	dir := t.TempDir()

	writeFile(t, dir, ".env", "HOOKROUTE_DOTENV_BASE_URL=https://dotenv.example\n")
	writeFile(t, dir, ConfigFileName, `
[rpc_endpoints]
base = "${HOOKROUTE_DOTENV_BASE_URL}"
`)
	t.Cleanup(func() { os.Unsetenv("HOOKROUTE_DOTENV_BASE_URL") })

	cfg, err := Provider(newViper(dir))
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example", cfg.Networks[domain.ChainIDBase].RPCURL)
}

func TestProvider_DefaultEndpointsFromAlchemyKey(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "k")
	dir := t.TempDir()

	cfg, err := Provider(newViper(dir))
	require.NoError(t, err)
	require.Len(t, cfg.Networks, 2)
	assert.Equal(t, "https://arb-mainnet.g.alchemy.com/v2/k", cfg.Networks[domain.ChainIDArbitrum].RPCURL)
	assert.Equal(t, "https://base-mainnet.g.alchemy.com/v2/k", cfg.Networks[domain.ChainIDBase].RPCURL)
}

func TestProvider_InvalidFile(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "")

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "malformed toml",
			content: "[api\n",
			errMsg:  "failed to parse hookroute.toml",
		},
		{
			name:    "unknown endpoint name",
			content: "[rpc_endpoints]\nmystery = \"https://x\"\n",
			errMsg:  `unknown chain id for rpc endpoint "mystery"`,
		},
		{
			name:    "duplicate chain",
			content: "[rpc_endpoints]\nbase = \"https://a\"\n\"8453\" = \"https://b\"\n",
			errMsg:  "both resolve to chain 8453",
		},
		{
			name:    "bad duration",
			content: "[status]\npoll_interval = \"soon\"\n",
			errMsg:  "invalid status.poll_interval",
		},
		{
			name:    "zero not found limit",
			content: "[status]\nnot_found_limit = 0\n",
			errMsg:  "status.not_found_limit must be positive",
		},
		{
			name:    "negative max polls",
			content: "[status]\nmax_polls = -1\n",
			errMsg:  "status.max_polls must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ConfigFileName, tt.content)

			_, err := Provider(newViper(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, root, ConfigFileName, "")

	t.Chdir(nested)

	got, err := FindProjectRoot()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, resolved, gotResolved)
}

func TestSetupViper_BindsFlagsAndEnv(t *testing.T) {
	t.Setenv("HOOKROUTE_INTEGRATOR_ID", "env-id")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().String("private-key", "", "")
	require.NoError(t, cmd.Flags().Set("non-interactive", "true"))

	v := SetupViper("/project", cmd)

	assert.True(t, v.GetBool("non_interactive"))
	assert.Equal(t, "/project", v.GetString("project_root"))
	assert.Equal(t, "env-id", v.GetString("integrator_id"))
	assert.Equal(t, 10*time.Minute, v.GetDuration("timeout"))
}
