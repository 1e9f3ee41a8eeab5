package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	cmtos "github.com/cometbft/cometbft/libs/os"
)

// DefaultDirPerm is the default permissions used when creating directories.
const DefaultDirPerm = 0o700

// Note: any changes to the comments/variables/mapstructure
// must be reflected in the appropriate struct in config/config.go.
//
//go:embed config.toml.tpl
var defaultConfigTemplate string

var configTemplate = template.Must(template.New("config.toml").Parse(defaultConfigTemplate))

// RenderConfig renders cfg as config.toml.
func RenderConfig(cfg *Config) ([]byte, error) {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return buffer.Bytes(), nil
}

// WriteConfigFile renders cfg and writes it to configFilePath.
func WriteConfigFile(configFilePath string, cfg *Config) error {
	dat, err := RenderConfig(cfg)
	if err != nil {
		return err
	}
	return cmtos.WriteFile(configFilePath, dat, 0o644)
}
