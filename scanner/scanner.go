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

// Package scanner implements the Resource Scanner: it walks
// the three-directory search path in precedence order, looking for a
// file named after the extension-point's interface (its "fully
// qualified name" analogue), and parses every line via the grammar in
// grammar.go. It is the Go analogue of a classpath resource scan, built
// on io/fs so the search path can be backed by an embedded, in-memory,
// or on-disk filesystem interchangeably.
package scanner

import (
	"bufio"
	"errors"
	"io/fs"
	"strings"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/config"
)

// Scanner reads extension-point configuration files from fs, resolving
// cfg's search-path templates against cfg.Framework.
type Scanner struct {
	FS     fs.FS
	Config config.Config
	Logger apis.Logger
}

// New constructs a Scanner. A nil logger installs apis.NopLogger.
func New(filesystem fs.FS, cfg config.Config, logger apis.Logger) *Scanner {
	if logger == nil {
		logger = apis.NopLogger{}
	}
	return &Scanner{FS: filesystem, Config: cfg, Logger: logger}
}

// Result is everything the scan found for one extension-point resource
// name, across every search directory, most-specific directory first.
type Result struct {
	Lines    []Line
	Failures []apis.LoadFailure
}

// Scan reads resourceName (the interface's fully-qualified name
// equivalent, e.g. "dirpx.dev/spi/internal/demo.Protocol") from every search
// directory in precedence order. A directory that has no such file is
// silently skipped; a file that fails to open for any other reason, or
// contains malformed lines, is logged and its failure recorded rather
// than aborting the scan.
func (s *Scanner) Scan(resourceName string) Result {
	var res Result
	for _, tmpl := range s.Config.SearchPaths {
		dir := strings.ReplaceAll(tmpl, "{{.Framework}}", s.Config.Framework)
		path := strings.TrimRight(dir, "/") + "/" + resourceName

		f, err := s.FS.Open(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.Logger.Warnf("scanner: %s: open error: %v", path, err)
				res.Failures = append(res.Failures, apis.LoadFailure{Symbol: path, Err: err})
			}
			continue // no file in this directory: not an error, just absent
		}

		scan := bufio.NewScanner(f)
		for scan.Scan() {
			raw := scan.Text()
			line, ok, perr := ParseLine(raw)
			if perr != nil {
				s.Logger.Warnf("scanner: %s: %v", path, perr)
				res.Failures = append(res.Failures, apis.LoadFailure{Symbol: raw, Err: perr})
				continue
			}
			if !ok {
				continue
			}
			line.Dir = dir
			if s.Config.NormalizeNames {
				line.Names = normalizeNames(line.Names)
			}
			res.Lines = append(res.Lines, line)
		}
		if err := scan.Err(); err != nil {
			s.Logger.Warnf("scanner: %s: read error: %v", path, err)
			res.Failures = append(res.Failures, apis.LoadFailure{Symbol: path, Err: err})
		}
		f.Close()
	}
	return res
}

// normalizeNames lower-cases and trims each name, config.NormalizeNames's
// tolerance for incidental whitespace/case in hand-written config lines.
func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return out
}
