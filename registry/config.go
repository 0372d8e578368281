package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"forme.dev/groups/errs"
)

// Config extends the default catalog. Keys of Aliases are canonical kind
// names (see KindNames).
//
// Example:
//
//	aliases:
//	  integer: [i64, long]
//	  dictionary: [hash_map]
//	overlaps: [i64]
type Config struct {
	Aliases  map[string][]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Overlaps []string            `yaml:"overlaps,omitempty" json:"overlaps,omitempty"`
}

// LoadConfig reads a YAML (or JSON) registry configuration from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read registry config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid registry config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a configuration document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.KindConfig, "GRP-CFG-001", "failed to decode registry config: "+err.Error(), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every key names a kind and every alias is non-empty.
func (c Config) Validate() error {
	for name, aliases := range c.Aliases {
		if _, ok := ParseKindName(name); !ok {
			return errs.New(errs.KindConfig, "GRP-CFG-001", fmt.Sprintf("unknown kind name %q", name))
		}
		for _, a := range aliases {
			if strings.TrimSpace(a) == "" {
				return errs.New(errs.KindConfig, "GRP-CFG-001", fmt.Sprintf("empty alias for kind %q", name))
			}
		}
	}
	for _, a := range c.Overlaps {
		if strings.TrimSpace(a) == "" {
			return errs.New(errs.KindConfig, "GRP-CFG-001", "empty overlap entry")
		}
	}
	return nil
}

// Options converts the configuration to registry options in a deterministic
// order.
func (c Config) Options() []Option {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	var opts []Option
	for _, name := range names {
		k, ok := ParseKindName(name)
		if !ok {
			n := name
			opts = append(opts, func(*Registry) error {
				return errs.New(errs.KindConfig, "GRP-CFG-001", fmt.Sprintf("unknown kind name %q", n))
			})
			continue
		}
		opts = append(opts, WithAliases(k, c.Aliases[name]...))
	}
	if len(c.Overlaps) > 0 {
		opts = append(opts, WithOverlap(c.Overlaps...))
	}
	return opts
}

// FromConfig builds a validated registry from the default catalog extended
// by cfg.
func FromConfig(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.Options()...)
}
