package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Instance *instanceSchema `toml:"instance,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported instance schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type instanceSchema struct {
	ConfigID       string `toml:"service_config_id,omitempty"`
	AgentType      string `toml:"agent_type"`
	HomeNetwork    string `toml:"home_network"`
	StakingProgram string `toml:"staking_program"`
	UpdatedAt      string `toml:"updated_at,omitempty"`
}
