package animnode

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
)

// ReadConfig reads a node config from a JSON file. Environment variables referenced as $VAR or ${VAR} are expanded
// before parsing. The config is validated.
func ReadConfig(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg, err := FromReader(bytes.NewReader(buf))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read ik node config %q", filePath)
	}
	return cfg, nil
}

// FromReader parses and validates a node config from JSON. Unknown fields are rejected.
func FromReader(r io.Reader) (*Config, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	if err := cfg.Validate("ik"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
