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

// Package rpcurl implements the "request URL" and "invocation"
// collaborators the adaptive dispatcher assumes available. It is
// intentionally small: an opaque request descriptor exposing a protocol
// string, a flat parameter map, and per-method parameter lookup, plus a
// call-site descriptor exposing only the target method name.
package rpcurl

import (
	"net/url"
	"strings"
)

// URL is the opaque request descriptor used throughout the loader: it
// carries a protocol/scheme, a host, and a flat parameter map, plus
// per-method parameter overrides addressed as "methodName.key".
type URL struct {
	raw      *url.URL
	protocol string
	host     string
	params   map[string]string
}

// Parse builds a URL from a raw string such as "dubbo://10.0.0.1:20880/com.foo.Bar?version=1.0".
// Query parameters populate the flat parameter map; the scheme becomes the
// protocol. An empty or unparsable raw string yields a URL with no
// protocol and no parameters rather than an error: a missing URL is a
// null-check concern for the caller, not a parse-error concern here.
func Parse(raw string) *URL {
	u := &URL{params: map[string]string{}}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return u
	}
	u.raw = parsed
	u.protocol = parsed.Scheme
	u.host = parsed.Host
	for k, v := range parsed.Query() {
		if len(v) > 0 {
			u.params[k] = v[0]
		}
	}
	return u
}

// New builds a URL directly from a protocol and parameter map, useful for
// tests and for hosts that already have structured request data rather
// than a literal URL string.
func New(protocol, host string, params map[string]string) *URL {
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return &URL{protocol: protocol, host: host, params: cp}
}

// Protocol returns the scheme, or "" when the URL has none.
func (u *URL) Protocol() string {
	if u == nil {
		return ""
	}
	return u.protocol
}

// Host returns the URL's host, or "" when the URL has none.
func (u *URL) Host() string {
	if u == nil {
		return ""
	}
	return u.host
}

// GetParameter returns the flat parameter named key, or def (the first
// element of def, if any) when absent or empty: "url.getParameter(k,
// default)" and its no-default variant.
func (u *URL) GetParameter(key string, def ...string) string {
	if u != nil {
		if v, ok := u.params[key]; ok && v != "" {
			return v
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

// GetMethodParameter returns the per-method override "method.key" if
// present and non-empty, else falls back to the flat key, else def:
// "url.getMethodParameter(methodName, k, default)".
func (u *URL) GetMethodParameter(method, key string, def ...string) string {
	if u != nil {
		scoped := method + "." + key
		if v, ok := u.params[scoped]; ok && v != "" {
			return v
		}
	}
	return u.GetParameter(key, def...)
}

// HasTriggerKey reports whether the URL carries a non-empty parameter
// whose key equals key or has the suffix "."+key, the activation
// filter's trigger-key predicate.
func (u *URL) HasTriggerKey(key string) bool {
	if u == nil {
		return false
	}
	suffix := "." + key
	for k, v := range u.params {
		if v == "" {
			continue
		}
		if k == key || strings.HasSuffix(k, suffix) {
			return true
		}
	}
	return false
}
