// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rmlines CLI: conversion of
// the tablet's binary stroke pages to SVG/PNG, plus listing and
// cataloguing of a local tablet backup.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rmlines CLI.
var rootCmd = &cobra.Command{
	Use:   "rmlines",
	Short: "Convert reMarkable stroke notebooks to vector images",
	Long: `rmlines decodes the tablet's proprietary .lines/.rm binary stroke format
and renders each page as SVG (optionally rasterised to PNG). It also works
with a local backup of the tablet's data directory: listing the document
tree and maintaining a SQLite catalog of it.

Truncated or corrupted pages degrade gracefully: everything decoded before
the damage is still rendered, and the output is always well-formed SVG.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rmlines.yaml or ~/.config/rmlines/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rmlines")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rmlines"))
		}
	}

	viper.SetEnvPrefix("RMLINES")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
