// Package fixtures holds the bundled profile shown when GitHub cannot be
// reached.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/willyv3/ghprofile/internal/profile"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Set is one complete fallback page.
type Set struct {
	Profile      profile.Profile      `yaml:"profile"`
	Repositories []profile.Repository `yaml:"repositories"`
	Activities   []profile.Activity   `yaml:"activities"`
	Overview     profile.Overview     `yaml:"overview"`
}

// Load decodes the embedded fixtures. Each call returns a fresh copy.
func Load() (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(fixturesYAML, &set); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if set.Profile.Username == "" {
		return nil, fmt.Errorf("fixtures: profile has no username")
	}
	return &set, nil
}

// MustLoad is Load for callers that cannot handle an error.
func MustLoad() *Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}
