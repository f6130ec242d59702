// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the config subcommand.
func NewConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration the client is running with, after merging the
config file, environment, and flags. The output is valid config-file YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfig(cmd)
		},
	}
}

func (a *app) runConfig(cmd *cobra.Command) error {
	view := struct {
		APIURL    string `yaml:"api_url"`
		Timeout   string `yaml:"timeout"`
		LogFormat string `yaml:"log_format"`
		LogLevel  string `yaml:"log_level"`
	}{
		APIURL:    a.cfg.APIURL,
		Timeout:   a.cfg.Timeout.String(),
		LogFormat: a.cfg.LogFormat,
		LogLevel:  a.cfg.LogLevel,
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return oops.Code("CONFIG_ENCODE").Wrap(err)
	}
	cmd.Print(string(data))
	return nil
}
