package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/flovouin/terraform-provider-mbparams/internal/exporter"
	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/internal/settings"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// The usage of the command line.
const usage = `Usage: mbparams <command> [flags]

Commands:
  sections         Lists the kinds of filters that can be added to a dashboard.
  mapping-options  Lists the columns and variables of a card a filter can be mapped to.
  create           Creates a dashboard parameter from a kind of filter.
  export           Writes the parameters of a dashboard as Terraform resources.
`

// The environment in which commands run, built from the configuration.
type environment struct {
	config     *mbparamsConfig
	settings   *settings.Store
	translator i18n.Translator
	factory    *parameters.Factory
	stdout     io.Writer
}

// Builds the settings store and the translator from the configuration.
func makeEnvironment(config *mbparamsConfig, stdout io.Writer) (*environment, error) {
	overrides := make(map[string]any)
	if config.FieldFilterOperatorsEnabled != nil {
		overrides[settings.FieldFilterOperatorsEnabled] = *config.FieldFilterOperatorsEnabled
	}
	if len(config.Locale) > 0 {
		overrides[settings.SiteLocale] = config.Locale
	}

	store, err := settings.Load(settings.Options{
		FilePath:  config.SettingsFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	return &environment{
		config:     config,
		settings:   store,
		translator: i18n.New(store.String(settings.SiteLocale)),
		factory:    parameters.NewFactory(nil),
		stdout:     stdout,
	}, nil
}

// Writes a value as indented JSON.
func (e *environment) printJson(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(e.stdout, string(data))
	return err
}

// Reads and parses a JSON file into a value of type `T`.
func readJsonFile[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value T
	err = json.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &value, nil
}

// Reads the existing parameters of a dashboard, or returns an empty list if the path is empty.
func readParameters(path string) ([]metabase.Parameter, error) {
	if len(path) == 0 {
		return []metabase.Parameter{}, nil
	}

	existing, err := readJsonFile[[]metabase.Parameter](path)
	if err != nil {
		return nil, err
	}

	return *existing, nil
}

func (e *environment) runSections(args []string) error {
	fs := flag.NewFlagSet("sections", flag.ContinueOnError)
	err := fs.Parse(args)
	if err != nil {
		return err
	}

	return e.printJson(parameters.Sections(e.settings, e.translator))
}

func (e *environment) runMappingOptions(args []string) error {
	fs := flag.NewFlagSet("mapping-options", flag.ContinueOnError)
	cardPath := fs.String("card", "", "The JSON file containing the card.")
	metadataPath := fs.String("metadata", "", "The JSON file containing the tables the card can reference.")
	parameterPath := fs.String("parameter", "", "The JSON file containing the parameter to list options for.")
	err := fs.Parse(args)
	if err != nil {
		return err
	}

	if len(*cardPath) == 0 {
		return errors.New("the card file should be specified with -card")
	}

	card, err := readJsonFile[metabase.Card](*cardPath)
	if err != nil {
		return err
	}

	var md *metadata.Metadata
	if len(*metadataPath) > 0 {
		md, err = metadata.Load(*metadataPath)
		if err != nil {
			return err
		}
	}

	var parameter *metabase.Parameter
	if len(*parameterPath) > 0 {
		parameter, err = readJsonFile[metabase.Parameter](*parameterPath)
		if err != nil {
			return err
		}
	}

	return e.printJson(parameters.MappingOptions(md, parameter, *card))
}

func (e *environment) runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	parameterType := fs.String("type", "", "The type of the option, e.g. date/month-year.")
	sectionId := fs.String("section", "", "The section of the option. Defaults to the first section offering the type.")
	existingPath := fs.String("existing", "", "The JSON file containing the existing parameters of the dashboard.")
	name := fs.String("name", "", "The name of the parameter. Defaults to the name of the option, made unique.")
	defaultValue := fs.String("default", "", "The default value of the parameter.")
	err := fs.Parse(args)
	if err != nil {
		return err
	}

	if len(*parameterType) == 0 {
		return errors.New("the type of the parameter should be specified with -type")
	}

	option, found := parameters.FindOption(parameters.Sections(e.settings, e.translator), *parameterType, *sectionId)
	if !found {
		return fmt.Errorf("no option of type '%s' in section '%s'", *parameterType, *sectionId)
	}

	existing, err := readParameters(*existingPath)
	if err != nil {
		return err
	}

	p := e.factory.CreateParameter(option, existing)
	if len(*name) > 0 {
		p = parameters.SetParameterName(p, *name)
	}
	if len(*defaultValue) > 0 {
		p = parameters.SetParameterDefaultValue(p, *defaultValue)
	}

	return e.printJson(p)
}

func (e *environment) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dashboardName := fs.String("dashboard", "", "The name of the dashboard.")
	existingPath := fs.String("existing", "", "The JSON file containing the parameters of the dashboard.")
	err := fs.Parse(args)
	if err != nil {
		return err
	}

	if len(*existingPath) == 0 {
		return errors.New("the parameters file should be specified with -existing")
	}

	existing, err := readParameters(*existingPath)
	if err != nil {
		return err
	}

	ec := exporter.NewExportContext()
	err = ec.ExportDashboard(*dashboardName, existing)
	if err != nil {
		return err
	}

	written, err := ec.Write(e.config.Output.Path, exporter.WriteOptions{
		FileNamePrefix: e.config.Output.FileNamePrefix,
		ClearOutput:    e.config.Output.Clear,
	})
	if err != nil {
		return err
	}

	for _, path := range written {
		_, err = fmt.Fprintln(e.stdout, path)
		if err != nil {
			return err
		}
	}

	return nil
}

// Runs a command with its arguments.
func run(config *mbparamsConfig, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	env, err := makeEnvironment(config, stdout)
	if err != nil {
		return err
	}

	command, commandArgs := args[0], args[1:]
	switch command {
	case "sections":
		return env.runSections(commandArgs)
	case "mapping-options":
		return env.runMappingOptions(commandArgs)
	case "create":
		return env.runCreate(commandArgs)
	case "export":
		return env.runExport(commandArgs)
	}

	return fmt.Errorf("unknown command '%s'\n\n%s", command, usage)
}

// The main entrypoint.
func main() {
	config, err := loadConfig(defaultConfigFilePath)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	err = run(config, os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
