package testsuite

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config lists the manifests to run and the tests to skip.
//
//	manifests:
//	  - testdata/rdf-tests/rdf/rdf11/rdf-turtle/manifest.ttl
//	skip:
//	  - turtle-subm-27
//	concurrency: 8
type Config struct {
	Manifests   []string `yaml:"manifests"`
	Skip        []string `yaml:"skip"`
	Concurrency int      `yaml:"concurrency"`
	// ApprovedOnly skips tests without rdft:Approved.
	ApprovedOnly bool `yaml:"approved_only"`
}

// LoadConfig reads a YAML config. Relative manifest paths are resolved
// against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, m := range cfg.Manifests {
		if !filepath.IsAbs(m) {
			cfg.Manifests[i] = filepath.Join(dir, m)
		}
	}
	return cfg, nil
}

func (c *Config) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) skipped(test *TestCase) bool {
	if c.ApprovedOnly && !test.Approved {
		return true
	}
	for _, name := range c.Skip {
		if name == test.Name || name == test.IRI {
			return true
		}
	}
	return false
}
