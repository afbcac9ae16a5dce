// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Config holds tool-level defaults that commands apply when the
// corresponding flag is not given
type Config struct {
	Analysis string  `yaml:"analysis"` // default analysis type
	Stations int     `yaml:"stations"` // stations per beam diagram
	Solver   string  `yaml:"solver"`   // linear solver name
	Grade    string  `yaml:"grade"`    // default steel grade
	OutDir   string  `yaml:"outDir"`   // directory for diagram images
	MaxUC    float64 `yaml:"maxUC"`    // unity check limit for sizing
}

// defaultConfig returns the built-in defaults
func defaultConfig() Config {
	return Config{
		Analysis: "frame",
		Stations: 21,
		Solver:   "ldlt",
		Grade:    "S235",
		OutDir:   "out",
		MaxUC:    1.0,
	}
}

// loadConfig reads the YAML config file. With no --config flag the file
// fem2d.yaml is used when present; missing files fall back to defaults.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	path := cfgPath
	if path == "" {
		if _, err := os.Stat("fem2d.yaml"); err != nil {
			return cfg, nil
		}
		path = "fem2d.yaml"
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, chk.Err("cannot read config file %q: %v", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, chk.Err("cannot parse config file %q: %v", path, err)
	}
	return cfg, nil
}
