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

package synth

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
)

// Entrypoint is the package-qualified symbol the compiler collaborator
// returns after evaluating generated source: a func(string, Runtime) any
// that constructs the dispatcher.
const Entrypoint = "dispatcher.New"

var (
	urlRType  = reflect.TypeOf((*rpcurl.URL)(nil))
	invRType  = reflect.TypeOf((*rpcurl.Invocation)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

type method struct {
	Name        string
	Params      string // "p0 T0, p1 T1"
	ArgNames    string // "p0, p1"
	Results     string // "T0, error" or "error"
	Adaptive    bool
	URLExpr     string // "p0"
	InvExpr     string // "p1" or "" if none
	KeysLiteral string // `[]string{"protocol"}`
	ZeroDecl    string // "var zero0 T0" or "" when method returns only error
	ResultType  string // "" when method returns only error
	HasResult   bool
}

const tmplSource = `package dispatcher

import (
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/synth"
)

type impl struct {
	point string
	rt    synth.Runtime
}

// New constructs the synthesized adaptive dispatcher for this extension
// point. point is the extension point's descriptive name (used only for
// diagnostics); rt supplies the materialization and key-resolution
// collaborators.
func New(point string, rt synth.Runtime) any {
	return &impl{point: point, rt: rt}
}
{{range .Methods}}
func (d *impl) {{.Name}}({{.Params}}) ({{.Results}}) {
{{if not .Adaptive}}
	{{if .ZeroDecl}}{{.ZeroDecl}}
	{{end}}return {{if .HasResult}}zero0, {{end}}synth.Unsupported(d.point, "{{.Name}}")
{{else}}
	{{if .ZeroDecl}}{{.ZeroDecl}}
	{{end}}url := {{.URLExpr}}
	if url == nil {
		return {{if .HasResult}}zero0, {{end}}synth.NilArgument(d.point, "{{.Name}}", "url")
	}
	var inv *rpcurl.Invocation
	{{if .InvExpr}}inv = {{.InvExpr}}
	if inv == nil {
		return {{if .HasResult}}zero0, {{end}}synth.NilArgument(d.point, "{{.Name}}", "invocation")
	}
	{{end}}name, ok := d.rt.Resolve("{{.Name}}", {{.KeysLiteral}}, url, inv)
	if !ok {
		return {{if .HasResult}}zero0, {{end}}synth.NoNameResolved(d.point, "{{.Name}}", {{.KeysLiteral}})
	}
	ext, err := d.rt.ByName(name)
	if err != nil {
		return {{if .HasResult}}zero0, {{end}}err
	}
	{{if .HasResult}}out, callErr := synth.Call(ext, "{{.Name}}", {{.ArgNames}})
	{{else}}_, callErr := synth.Call(ext, "{{.Name}}", {{.ArgNames}})
	{{end}}
	if callErr != nil {
		return {{if .HasResult}}zero0, {{end}}callErr
	}
	{{if .HasResult}}res, _ := out.({{.ResultType}})
	return res, nil
	{{else}}return nil
	{{end}}
{{end}}
}
{{end}}
`

// Generate reflects over point.Iface's method set and emits Go source
// for a dispatcher struct implementing it. It returns a
// *apis.SynthesisError when a method's signature falls outside the
// supported type universe (see typeName), an adaptive method has no
// rpcurl.URL-typed parameter, or an adaptive method's declared key
// chain is longer than maxChainDepth (the config.Config.MaxChainDepth
// guard against pathological nested-default resolution).
func Generate(point *apis.Point, maxChainDepth int) (source string, err error) {
	iface := point.Iface
	methods := make([]method, 0, iface.NumMethod())

	for i := 0; i < iface.NumMethod(); i++ {
		m := iface.Method(i)
		spec, adaptive := point.Methods[m.Name]
		mt := m.Type

		params := make([]string, mt.NumIn())
		argNames := make([]string, mt.NumIn())
		urlExpr, invExpr := "", ""
		for pi := 0; pi < mt.NumIn(); pi++ {
			pt := mt.In(pi)
			tn, terr := typeName(pt)
			if terr != nil {
				return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s param %d: %v", m.Name, pi, terr)}
			}
			pname := fmt.Sprintf("p%d", pi)
			params[pi] = pname + " " + tn
			argNames[pi] = pname
			if pt == urlRType {
				urlExpr = pname
			}
			if pt == invRType {
				invExpr = pname
			}
		}

		if mt.NumOut() == 0 || mt.Out(mt.NumOut()-1) != errorType {
			return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s does not end with an error result", m.Name)}
		}
		if mt.NumOut() > 2 {
			return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s has unsupported result arity %d", m.Name, mt.NumOut())}
		}

		results := make([]string, mt.NumOut())
		hasResult := mt.NumOut() == 2
		resultType := ""
		for ri := 0; ri < mt.NumOut(); ri++ {
			rt := mt.Out(ri)
			tn, terr := typeName(rt)
			if terr != nil {
				return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s result %d: %v", m.Name, ri, terr)}
			}
			results[ri] = tn
			if rt != errorType {
				resultType = tn
			}
		}

		if adaptive && urlExpr == "" {
			return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s: no rpcurl.URL-typed parameter found", m.Name)}
		}

		keys := spec.Keys
		if adaptive && len(keys) == 0 {
			keys = []string{point.DerivedKey()}
		}
		if adaptive && maxChainDepth > 0 && len(keys) > maxChainDepth {
			return "", &apis.SynthesisError{Point: iface.String(), Msg: fmt.Sprintf("method %s: key chain length %d exceeds max chain depth %d", m.Name, len(keys), maxChainDepth)}
		}

		zeroDecl := ""
		if hasResult {
			zeroDecl = fmt.Sprintf("var zero0 %s", resultType)
		}

		methods = append(methods, method{
			Name:        m.Name,
			Params:      joinComma(params),
			ArgNames:    joinComma(argNames),
			Results:     joinComma(results),
			Adaptive:    adaptive,
			URLExpr:     urlExpr,
			InvExpr:     invExpr,
			KeysLiteral: keysLiteral(keys),
			ZeroDecl:    zeroDecl,
			ResultType:  resultType,
			HasResult:   hasResult,
		})
	}

	tpl, perr := template.New("dispatcher").Parse(tmplSource)
	if perr != nil {
		return "", fmt.Errorf("synth: internal template error: %w", perr)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ Methods []method }{methods}); err != nil {
		return "", fmt.Errorf("synth: template execution: %w", err)
	}
	return buf.String(), nil
}

// typeName prints a Go type expression for t, restricted to the universe
// synthesized dispatcher signatures support: basic kinds, error, empty
// interfaces, and *rpcurl.URL / *rpcurl.Invocation. Any other named type
// is rejected rather than guessing an import path, per this package's
// doc comment.
func typeName(t reflect.Type) (string, error) {
	switch {
	case t == urlRType:
		return "*rpcurl.URL", nil
	case t == invRType:
		return "*rpcurl.Invocation", nil
	case t == errorType:
		return "error", nil
	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		return "any", nil
	case t.PkgPath() == "":
		switch t.Kind() {
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return t.String(), nil
		}
	}
	return "", fmt.Errorf("unsupported type %s outside the synthesizable universe (string/bool/numeric/error/any/*rpcurl.URL/*rpcurl.Invocation)", t)
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}

func keysLiteral(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
