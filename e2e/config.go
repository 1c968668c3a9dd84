package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COLOURS enables colorized step headers for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_KEEP_ARTIFACTS keeps the generated files, database and model after the run
	KeepArtifacts bool `envconfig:"E2E_KEEP_ARTIFACTS" default:"false"`
	// E2E_ROWS is the number of synthetic messages fed to the pipeline
	Rows int `envconfig:"E2E_ROWS" default:"120"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
