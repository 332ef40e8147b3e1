package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Status:         config.DefaultStatusPolicy(),
		Swap:           config.DefaultSwapConfig(),
		Route: config.RouteDefaults{
			Slippage:      1,
			EnableExpress: true,
		},
		Hook: config.HookMetadata{
			Provider:    "Unknown Protocol",
			Description: "Hook call chain",
			LogoURI:     "https://www.svgrepo.com/show/126178/question-mark.svg",
		},
	}

	// Load .env files before expanding ${VAR} references
	loadEnvFiles(projectRoot)

	configFile, err := loadProjectConfig(projectRoot, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	cfg.ConfigFile = configFile

	// Environment and flags win over the file
	if key := firstNonEmpty(v.GetString("private_key"), os.Getenv("PRIVATE_KEY")); key != "" {
		cfg.PrivateKey = key
	}
	if id := firstNonEmpty(v.GetString("integrator_id"), os.Getenv("INTEGRATOR_ID")); id != "" {
		cfg.API.IntegratorID = id
	}
	if url := v.GetString("api_url"); url != "" {
		cfg.API.BaseURL = url
	}
	if v.IsSet("max_polls") {
		cfg.Status.MaxPolls = v.GetInt("max_polls")
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find hookroute.toml.
// Outside a project the current directory is used so env-only setups work.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("HOOKROUTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		if err != nil {
			panic(err)
		}
	})

	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
