package configuration

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/whaeuser/plotterm/internal/model"
)

// Loader knows how to load the panels configuration.
type Loader interface {
	Load(r io.Reader) (*model.Config, error)
}

// YAMLLoader loads the configuration from YAML (JSON is valid YAML too).
type YAMLLoader struct{}

// Load satisfies Loader interface.
func (YAMLLoader) Load(r io.Reader) (*model.Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read configuration")
	}

	cfg := &model.Config{}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}
