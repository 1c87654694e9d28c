package common

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/starkfoundry/sn-exec-go/config"
)

// LoadVersionedConstantsConfig loads the versioned constants TOML
// configuration from the given file
func LoadVersionedConstantsConfig(filePath string) (*config.VersionedConstantsConfig, error) {
	fileContents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "reading versioned constants config")
	}

	cfg := &config.VersionedConstantsConfig{}
	err = toml.Unmarshal(fileContents, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing versioned constants config %s", filePath)
	}

	return cfg, nil
}
