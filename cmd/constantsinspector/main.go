package main

import (
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli"

	"github.com/starkfoundry/sn-exec-go/common"
	"github.com/starkfoundry/sn-exec-go/common/forking"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

var (
	inspectorHelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}
VERSION:
   {{.Version}}
   {{end}}
`
	constantsFile = cli.StringFlag{
		Name:  "constants-file",
		Usage: "Path to a versioned constants JSON document. When empty, the bundled default document is inspected",
		Value: "",
	}
	constantsConfig = cli.StringFlag{
		Name:  "constants-config",
		Usage: "Path to a TOML config binding constants documents to protocol versions. All documents are validated; the one matching --protocol-version is inspected",
		Value: "",
	}
	protocolVersion = cli.StringFlag{
		Name:  "protocol-version",
		Usage: "Protocol version to resolve against the TOML config",
		Value: "",
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level pattern",
		Value: "*:INFO",
	}
)

var log = logger.GetOrCreate("cmd/constantsinspector")

func main() {
	app := cli.NewApp()
	cli.AppHelpTemplate = inspectorHelpTemplate
	app.Name = "Versioned Constants Inspector"
	app.Version = "v1.0.0"
	app.Usage = "Validates versioned constants documents and prints the resolved gas cost table"
	app.Flags = []cli.Flag{
		constantsFile,
		constantsConfig,
		protocolVersion,
		logLevel,
	}
	app.Authors = []cli.Author{
		{
			Name:  "The StarkFoundry Team",
			Email: "contact@starkfoundry.io",
		},
	}

	app.Action = func(c *cli.Context) error {
		return inspectConstants(c)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error("inspection failed", "error", err.Error())
		os.Exit(1)
	}
}

func inspectConstants(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	constants, err := resolveConstants(ctx)
	if err != nil {
		return err
	}

	printConstants(constants)
	log.Info("constants document is valid")

	return nil
}

func resolveConstants(ctx *cli.Context) (*versionedConstants.VersionedConstants, error) {
	configPath := ctx.GlobalString(constantsConfig.Name)
	filePath := ctx.GlobalString(constantsFile.Name)

	switch {
	case len(configPath) > 0:
		return resolveFromConfig(configPath, ctx.GlobalString(protocolVersion.Name))
	case len(filePath) > 0:
		log.Info("inspecting constants document", "file", filePath)
		return versionedConstants.NewVersionedConstantsFromFile(filePath)
	default:
		log.Info("inspecting bundled default constants document")
		return versionedConstants.DefaultVersionedConstants(), nil
	}
}

func resolveFromConfig(configPath string, version string) (*versionedConstants.VersionedConstants, error) {
	cfg, err := common.LoadVersionedConstantsConfig(configPath)
	if err != nil {
		return nil, err
	}

	registry, err := forking.NewConstantsRegistry(forking.ArgsNewConstantsRegistry{
		VersionedConstantsConfig: *cfg,
		ConfigDir:                filepath.Dir(configPath),
	})
	if err != nil {
		return nil, err
	}

	if len(version) == 0 {
		log.Info("inspecting current constants document", "config", configPath)
		return registry.CurrentConstants(), nil
	}

	log.Info("inspecting constants document", "config", configPath, "protocol version", version)

	return registry.ConstantsForVersion(version)
}

func printConstants(constants *versionedConstants.VersionedConstants) {
	fmt.Println("resolved gas costs:")
	for _, name := range process.AllowedGasCostNames {
		fmt.Printf("  %-45s %d\n", name, constants.GasCost(name))
	}

	fmt.Println()
	fmt.Printf("tx initial gas:           %d\n", constants.TxInitialGas())
	fmt.Printf("invoke tx max n steps:    %d\n", constants.InvokeTxMaxNSteps())
	fmt.Printf("validate max n steps:     %d\n", constants.ValidateMaxNSteps())
	fmt.Printf("max recursion depth:      %d\n", constants.MaxRecursionDepth())

	limits := constants.TxEventLimits()
	fmt.Printf("event limits:             max emitted %d, max keys %d, max data %d\n",
		limits.MaxNEmittedEvents, limits.MaxKeysLength, limits.MaxDataLength)
}
