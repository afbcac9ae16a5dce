// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the fem2d command line interface
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fem2d",
	Short: "2D frame, plate and plane-stress finite element analysis",
	Long: `fem2d - 2D structural finite element analysis

A CLI tool for linear-elastic analysis of 2D structures:
  - Frame analysis (Euler-Bernoulli beams, hinges, springs, sub-nodes)
  - Plane stress / plane strain membranes
  - Kirchhoff plate bending on auto-meshed regions
  - Load cases, combinations and force envelopes
  - Steel profile checks and sizing (IPE / HEA / HEB)

Models are JSON files; results are written as JSON and optional
diagram images.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (default fem2d.yaml if present)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
