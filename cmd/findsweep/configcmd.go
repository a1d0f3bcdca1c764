package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/standardbeagle/findsweep/internal/config"

	"github.com/urfave/cli/v2"
)

func configInitCommand(c *cli.Context) error {
	output := c.String("output")
	if output == "" {
		output = config.DefaultConfigName
	}

	if !c.Bool("force") {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", output)
		}
	}

	if err := os.WriteFile(output, []byte(config.Template()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	fmt.Printf("Configuration file created: %s\n", output)
	fmt.Printf("Edit the file to customize settings for your project.\n")
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render config: %v", err)
	}
	fmt.Println(string(data))
	return nil
}

func configValidateCommand(c *cli.Context) error {
	configPath := c.String("config")
	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("configuration file %s not found", configPath)
	}

	if _, err := config.Load(configPath); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("Configuration file %s is valid\n", configPath)
	return nil
}
