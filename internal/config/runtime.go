package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Runtime holds process-level settings read from the environment.
// CLI flags default to these values and override them when set.
type Runtime struct {
	DBPath      string        `env:"MERGE2048_DB" envDefault:"~/.merge2048/results.db"`
	LogLevel    string        `env:"MERGE2048_LOG_LEVEL" envDefault:"info"`
	Seed        int64         `env:"MERGE2048_SEED" envDefault:"0"` // 0 means time-based
	SSHAddr     string        `env:"MERGE2048_SSH_ADDR" envDefault:":23234"`
	WSAddr      string        `env:"MERGE2048_WS_ADDR"`
	HostKeyPath string        `env:"MERGE2048_HOST_KEY"`
	IdleTimeout time.Duration `env:"MERGE2048_IDLE_TIMEOUT" envDefault:"30m"`
}

// LoadRuntime parses Runtime from the environment.
func LoadRuntime() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return rt, fmt.Errorf("config: parse env: %w", err)
	}
	return rt, nil
}
