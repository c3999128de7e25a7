package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/lumenhq/lumen/pkg/config"
)

const configFileName = "lumen.toml"

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default lumen.toml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config file"},
		},
		Action: runInit,
	}
}

func runInit(c *cli.Context) error {
	if _, err := os.Stat(configFileName); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
	}

	content, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := "# lumen configuration\n# See `lumen config show` for the effective configuration.\n\n"
	if err := os.WriteFile(configFileName, append([]byte(header), content...), 0o644); err != nil {
		return err
	}

	color.Green("Wrote %s", configFileName)
	return nil
}
