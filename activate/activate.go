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

// Package activate implements the Activation Filter: merge an
// automatically selected, ordered subset of activatable extensions with
// a user-specified list honoring removal ("-name") and
// default-placeholder ("default") tokens.
package activate

import (
	"sort"
	"strings"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
)

// Names resolves entries and requested into the final ordered list of
// extension names, without materializing instances. Activate (below)
// builds on this and resolves each name via byName.
func Names(entries []apis.Entry, url *rpcurl.URL, requested []string, group string) []string {
	excludesDefault := contains(requested, "-default")

	var auto []apis.Entry
	if !excludesDefault {
		for _, e := range entries {
			if e.Category != apis.Ordinary || e.Activation == nil {
				continue
			}
			if !groupMatches(e.Activation.Groups, group) {
				continue
			}
			if requestedMentions(requested, e.Name) {
				continue
			}
			if !triggersMatch(e.Activation.TriggerKeys, url) {
				continue
			}
			auto = append(auto, e)
		}
		sort.SliceStable(auto, func(i, j int) bool {
			return auto[i].Activation.Order < auto[j].Activation.Order
		})
	}

	var before, after []string
	seenDefault := false
	cur := &before
	for _, n := range requested {
		switch {
		case n == "":
			continue
		case n == "default":
			seenDefault = true
			cur = &after
		case strings.HasPrefix(n, "-"):
			continue
		case isNegated(requested, n):
			continue
		default:
			*cur = append(*cur, n)
		}
	}

	autoNames := make([]string, 0, len(auto))
	for _, e := range auto {
		autoNames = append(autoNames, e.Name)
	}

	if !seenDefault {
		// No "default" marker: the fallback is "all of user" with auto
		// appended after, mirroring the case where the splice point never
		// occurred.
		out := make([]string, 0, len(before)+len(autoNames))
		out = append(out, before...)
		out = append(out, autoNames...)
		return out
	}

	out := make([]string, 0, len(before)+len(autoNames)+len(after))
	out = append(out, before...)
	out = append(out, autoNames...)
	out = append(out, after...)
	return out
}

// Activate materializes Names' result via byName, in order.
func Activate[T any](entries []apis.Entry, url *rpcurl.URL, requested []string, group string, byName func(name string) (T, error)) ([]T, error) {
	names := Names(entries, url, requested, group)
	out := make([]T, 0, len(names))
	for _, n := range names {
		inst, err := byName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func groupMatches(groups []string, group string) bool {
	if len(groups) == 0 {
		return true
	}
	if group == "" {
		return true
	}
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}

func triggersMatch(keys []string, url *rpcurl.URL) bool {
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		if url.HasTriggerKey(k) {
			return true
		}
	}
	return false
}

func requestedMentions(requested []string, name string) bool {
	return contains(requested, name) || contains(requested, "-"+name)
}

func isNegated(requested []string, name string) bool {
	return contains(requested, name) && contains(requested, "-"+name)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
