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

package scanner

import (
	"regexp"
	"strings"
)

// nameSeparator splits a NAME_LIST on one or more commas with surrounding
// whitespace: one or more identifier tokens separated by \s*,+\s*.
var nameSeparator = regexp.MustCompile(`\s*,+\s*`)

// Line is one parsed, non-comment, non-blank resource file line, in one
// of two accepted forms: "NAME_LIST = symbol" (an ordinary or adaptive
// binding, possibly aliased) and a bare "symbol" (a wrapper, which has
// no name — wrapper entries are classified by constructor shape, not by
// the presence of a name).
type Line struct {
	// Names is nil for a bare symbol line. Names[0] is the canonical name
	// (the first alias assigned in the config file); later entries are
	// aliases for the same symbol.
	Names  []string
	Symbol string
	// Dir is the search-path directory (after {{.Framework}} substitution)
	// this line was read from, used to distinguish a genuine duplicate
	// binding within one file from a lower-precedence override across
	// directories.
	Dir string
}

// ParseLine parses one raw line from a resource file. It returns ok=false
// for blank lines and lines whose first non-whitespace rune is '#'
// (the comment syntax). A malformed "names =" with no symbol, or
// "= symbol" with no names, is reported via err.
func ParseLine(raw string) (line Line, ok bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Line{}, false, nil
	}

	if idx := strings.IndexByte(trimmed, '='); idx >= 0 {
		namesPart := strings.TrimSpace(trimmed[:idx])
		symbol := strings.TrimSpace(trimmed[idx+1:])
		if namesPart == "" {
			return Line{}, true, &MalformedLineError{Raw: raw, Reason: "empty name list before '='"}
		}
		if symbol == "" {
			return Line{}, true, &MalformedLineError{Raw: raw, Reason: "empty symbol after '='"}
		}
		names := splitNames(namesPart)
		if len(names) == 0 {
			return Line{}, true, &MalformedLineError{Raw: raw, Reason: "name list has no tokens"}
		}
		return Line{Names: names, Symbol: symbol}, true, nil
	}

	return Line{Symbol: trimmed}, true, nil
}

func splitNames(namesPart string) []string {
	parts := nameSeparator.Split(namesPart, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MalformedLineError is a single resource-file parse failure: "lines
// that do not parse are logged and skipped" when the caller chooses to
// skip rather than fail the whole scan.
type MalformedLineError struct {
	Raw    string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return "scanner: malformed line " + quote(e.Raw) + ": " + e.Reason
}

func quote(s string) string {
	return "\"" + s + "\""
}
