/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML-sugar alternative to building a Config with
// functional options: purely additive, the line-based resource grammar
// remains the canonical config format for extension bindings themselves.
type FileConfig struct {
	Framework      string   `yaml:"framework" validate:"required,alphanum"`
	SearchPaths    []string `yaml:"searchPaths" validate:"omitempty,dive,required"`
	MaxChainDepth  int      `yaml:"maxChainDepth" validate:"gte=0,lte=64"`
	NormalizeNames bool     `yaml:"normalizeNames"`
}

var fileValidator = validator.New()

// LoadFile reads and validates a FileConfig from path, then converts it to
// a Config. A FileConfig with no SearchPaths falls back to
// DefaultSearchPaths.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := fileValidator.Struct(&fc); err != nil {
		return Config{}, fmt.Errorf("config: validate %s: %w", path, err)
	}

	opts := []Option{
		WithFramework(fc.Framework),
		WithMaxChainDepth(fc.MaxChainDepth),
		WithNormalizeNames(fc.NormalizeNames),
	}
	if len(fc.SearchPaths) > 0 {
		opts = append(opts, WithSearchPaths(fc.SearchPaths...))
	}
	return NewConfig(opts...), nil
}
