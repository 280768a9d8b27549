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

// Package applog provides the default apis.Logger, backed by
// github.com/rs/zerolog's structured console writer.
package applog

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"dirpx.dev/spi/apis"
)

// Zerolog wraps a zerolog.Logger to satisfy apis.Logger.
type Zerolog struct {
	logger zerolog.Logger
}

// New returns a Zerolog logger writing human-readable, timestamped lines
// to stderr, suitable for the "logged and skipped" conditions the
// Resource Scanner and Injector report.
func New() *Zerolog {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &Zerolog{logger: zerolog.New(writer).With().Timestamp().Logger()}
}

// Warnf implements apis.Logger.
func (z *Zerolog) Warnf(format string, args ...any) {
	z.logger.Warn().Msgf(format, args...)
}

var _ apis.Logger = (*Zerolog)(nil)
