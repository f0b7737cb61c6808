// Package config loads agentctl settings from ~/.agentctl/config.toml and
// AGENTCTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/bnema/agentctl/internal/domain"
)

const (
	EnvPrefix  = "AGENTCTL"
	configName = "config"
	configType = "toml"
	configDir  = ".agentctl"

	KeyMiddlewareURL       = "middleware.url"
	KeyMiddlewareTimeout   = "middleware.timeout"
	KeyDeploymentInterval  = "polling.deployment_interval"
	KeyBalancesInterval    = "polling.balances_interval"
	KeyStakingInterval     = "polling.staking_interval"
	KeyConfirmDelay        = "lifecycle.confirm_delay"
	KeyStakingPrograms     = "staking.programs"
	KeyLowNativeThreshold  = "balances.low_native_threshold"
	KeyInstancePath        = "instance.path"
	KeyServerAddr          = "server.addr"
	defaultServerAddr      = "127.0.0.1:8765"
	defaultLowNativeAmount = "0.1"
)

type Config struct {
	MiddlewareURL      string
	MiddlewareTimeout  time.Duration
	DeploymentInterval time.Duration
	BalancesInterval   time.Duration
	StakingInterval    time.Duration
	ConfirmDelay       time.Duration
	StakingPrograms    []domain.ProgramID
	LowNativeThreshold decimal.Decimal
	InstancePath       string
	ServerAddr         string
}

// Load reads configFile when given, otherwise config.toml under
// ~/.agentctl. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, homeDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(v.GetString(KeyLowNativeThreshold)))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", KeyLowNativeThreshold, err)
	}

	cfg := Config{
		MiddlewareURL:      strings.TrimSpace(v.GetString(KeyMiddlewareURL)),
		MiddlewareTimeout:  v.GetDuration(KeyMiddlewareTimeout),
		DeploymentInterval: v.GetDuration(KeyDeploymentInterval),
		BalancesInterval:   v.GetDuration(KeyBalancesInterval),
		StakingInterval:    v.GetDuration(KeyStakingInterval),
		ConfirmDelay:       v.GetDuration(KeyConfirmDelay),
		StakingPrograms:    parsePrograms(v.GetStringSlice(KeyStakingPrograms)),
		LowNativeThreshold: threshold,
		InstancePath:       v.GetString(KeyInstancePath),
		ServerAddr:         v.GetString(KeyServerAddr),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyMiddlewareURL, "http://localhost:8000")
	v.SetDefault(KeyMiddlewareTimeout, 30*time.Second)
	v.SetDefault(KeyDeploymentInterval, 5*time.Second)
	v.SetDefault(KeyBalancesInterval, 5*time.Second)
	v.SetDefault(KeyStakingInterval, 30*time.Second)
	v.SetDefault(KeyConfirmDelay, 5*time.Second)
	v.SetDefault(KeyStakingPrograms, []string{})
	v.SetDefault(KeyLowNativeThreshold, defaultLowNativeAmount)
	v.SetDefault(KeyInstancePath, filepath.Join(homeDir, configDir, "instance.toml"))
	v.SetDefault(KeyServerAddr, defaultServerAddr)
}

func (c Config) Validate() error {
	var errs []error

	if parsed, err := url.Parse(c.MiddlewareURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", KeyMiddlewareURL, c.MiddlewareURL))
	}
	intervals := []struct {
		key   string
		value time.Duration
	}{
		{KeyDeploymentInterval, c.DeploymentInterval},
		{KeyBalancesInterval, c.BalancesInterval},
		{KeyStakingInterval, c.StakingInterval},
	}
	for _, interval := range intervals {
		if interval.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", interval.key, interval.value))
		}
	}
	if c.ConfirmDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", KeyConfirmDelay, c.ConfirmDelay))
	}
	if c.LowNativeThreshold.IsNegative() {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyLowNativeThreshold))
	}
	if c.InstancePath == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyInstancePath))
	}

	return errors.Join(errs...)
}

// parsePrograms accepts both TOML arrays and comma separated env values.
func parsePrograms(raw []string) []domain.ProgramID {
	var programs []domain.ProgramID
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			id := domain.ProgramID(strings.TrimSpace(part))
			if id != "" && !slices.Contains(programs, id) {
				programs = append(programs, id)
			}
		}
	}
	return programs
}
