// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config implements the configuration of the analysis tools: which
// functions to analyze, where to write reports, and how verbose to be. The
// analyses themselves are pure library code; configuration only drives the
// command-line front ends and logging.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config holds the options of the command-line tools. If some field is not
// defined in the config file, it will be empty/zero in the struct.
// Private fields are not populated from a yaml file, but computed after
// initialization.
type Config struct {
	// Inlined so the yaml keys sit at the top level of the config file.
	Options `yaml:",inline"`

	sourceFile string

	// if the FuncFilter is specified
	funcFilterRegex *regexp.Regexp
}

// Options are the user-settable options of the tools.
type Options struct {
	// LogLevel controls the verbosity of logging (see LogLevel constants in
	// this package).
	LogLevel int `yaml:"log-level"`

	// FuncFilter restricts the functions analyzed by the tools to those whose
	// name matches this regex. Empty means every function.
	FuncFilter string `yaml:"func-filter"`

	// OutputDir is the directory where rendered graphs are written. Empty
	// means the working directory.
	OutputDir string `yaml:"output-dir"`

	// RenderDomTree adds dominator-tree edges to the rendered graphs.
	RenderDomTree bool `yaml:"render-dom-tree"`

	// ReportLoops reports the elementary cycles found in each control-flow
	// graph.
	ReportLoops bool `yaml:"report-loops"`
}

// NewDefault returns a config with sensible defaults, for tools that run
// without a config file.
func NewDefault() *Config {
	return &Config{Options: Options{LogLevel: int(InfoLevel)}}
}

// Load reads a config from a yaml file.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", filename, err)
	}
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", filename, err)
	}
	cfg.sourceFile = filename
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SourceFile returns the file the config was loaded from, if any.
func (c *Config) SourceFile() string {
	return c.sourceFile
}

// MatchFunc reports whether the function name passes the FuncFilter.
func (c *Config) MatchFunc(name string) bool {
	if c.funcFilterRegex == nil {
		return true
	}
	return c.funcFilterRegex.MatchString(name)
}

func (c *Config) compile() error {
	if c.FuncFilter != "" {
		r, err := regexp.Compile(c.FuncFilter)
		if err != nil {
			return fmt.Errorf("func-filter is not a valid regex: %w", err)
		}
		c.funcFilterRegex = r
	}
	if c.LogLevel < int(ErrLevel) || c.LogLevel > int(TraceLevel) {
		return fmt.Errorf("log-level %d out of range [%d, %d]", c.LogLevel, ErrLevel, TraceLevel)
	}
	return nil
}
