package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// The prefix for all environment variables to consider when loading the configuration.
const environmentVariablesPrefix = "MBPARAMS_"

// The default location of the configuration file.
const defaultConfigFilePath = "mbparams.yml"

// Defines how the Terraform configuration is written to files.
type outputConfig struct {
	Path           string `koanf:"path"`             // The path where the Terraform configuration will be written.
	Clear          bool   `koanf:"clear"`            // Whether generated files with the right prefix should be removed from the output directory before writing.
	FileNamePrefix string `koanf:"file_name_prefix"` // The prefix of generated files.
}

// The entire configuration of the command line.
type mbparamsConfig struct {
	SettingsFile                string       `koanf:"settings_file"`                  // A YAML file containing Metabase settings.
	Locale                      string       `koanf:"locale"`                         // Overrides the site locale.
	FieldFilterOperatorsEnabled *bool        `koanf:"field_filter_operators_enabled"` // Overrides the setting of the same name. The settings decide when unset.
	Output                      outputConfig `koanf:"output"`                         // Defines how the Terraform configuration is written to files.
}

// The sections of the configuration, i.e. the keys containing other keys.
var configSections = []string{"output"}

// Converts an environment variable to a configuration key, e.g. `MBPARAMS_OUTPUT_FILE_NAME_PREFIX` becomes
// `output.file_name_prefix`. Only the first underscore after a section name is a separator, as keys themselves contain
// underscores.
func configKeyFromEnvironmentVariable(variable string) string {
	key := strings.ToLower(strings.TrimPrefix(variable, environmentVariablesPrefix))

	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}

	return key
}

// Loads the `mbparamsConfig` from the given config file and the environment. A missing file is ignored.
func loadConfig(configFilePath string) (*mbparamsConfig, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(mbparamsConfig{
		Output: outputConfig{
			Path: "./",
		},
	}, "koanf"), nil)
	if err != nil {
		return nil, err
	}

	err = k.Load(file.Provider(configFilePath), yaml.Parser())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	err = k.Load(env.Provider(environmentVariablesPrefix, ".", configKeyFromEnvironmentVariable), nil)
	if err != nil {
		return nil, err
	}

	var conf mbparamsConfig
	err = k.Unmarshal("", &conf)
	if err != nil {
		return nil, err
	}

	return &conf, nil
}
