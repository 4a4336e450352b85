// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command xscc is the xsc HLSL-to-GLSL cross compiler CLI.
//
// Usage:
//
//	xscc [options] shader.hlsl [options] shader2.hlsl ...
//
// xscc accepts one or more (OPTION+ FILE)+ sequences (spec.md §6): every
// flag before a filename configures that file's translation, and stays
// in effect for subsequent files until overridden, mirroring how a
// multi-file native compiler driver behaves.
//
// Examples:
//
//	xscc shader.hlsl                          # translate to stdout, GLSL auto version
//	xscc -entry main -target fragment -output out.frag shader.hlsl
//	xscc -shaderout essl300 a.hlsl -target fragment b.hlsl
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/gogpu/xsc"
	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/version"
)

// fileOptions is the CLI's persistent per-sequence state (spec.md §6):
// every field mirrors one flag and survives across files in an
// (OPTION+ FILE)+ chain until a later occurrence of the same flag
// overrides it, matching a native multi-file compiler driver.
type fileOptions struct {
	entry     string
	target    xsc.ShaderStage
	shaderin  version.InputVersion
	shaderout version.OutputVersion
	output    string

	indent string
	prefix string

	warn      bool
	blanks    bool
	lineMarks bool
	dumpAST   bool
	pponly    bool
	comments  bool

	defines map[string]string
}

func newFileOptions() *fileOptions {
	def := xsc.DefaultOptions()
	return &fileOptions{
		target:    xsc.StageUndefined,
		shaderin:  version.InputAuto,
		shaderout: version.OutputAutoGLSL,
		indent:    def.Indent,
		prefix:    def.Prefix,
		blanks:    def.Blanks,
		comments:  def.KeepComments,
		defines:   map[string]string{},
	}
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return
	}

	state := newFileOptions()
	for len(args) > 0 {
		fs := flag.NewFlagSet("xscc", flag.ContinueOnError)
		fs.Usage = usage
		registerFlags(fs, state)
		if err := fs.Parse(args); err != nil {
			// flag already printed its own message; exit code stays 0
			// per spec.md §6 ("exit code 0 in all paths").
			return
		}

		rest := fs.Args()
		if len(rest) == 0 {
			return
		}
		file := rest[0]
		args = rest[1:]

		if err := translateFile(file, state); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
		}
	}
}

func registerFlags(fs *flag.FlagSet, state *fileOptions) {
	fs.StringVar(&state.entry, "entry", state.entry, "entry point function name")
	fs.StringVar(&state.output, "output", state.output, "output file (default: stdout)")
	fs.StringVar(&state.indent, "indent", state.indent, "indentation unit")
	fs.StringVar(&state.prefix, "prefix", state.prefix, `name-mangling prefix ("<none>" for empty)`)

	fs.Func("target", "shader stage: vertex|fragment|geometry|tess-control|tess-evaluation|compute", func(v string) error {
		st, ok := stageNames[v]
		if !ok {
			return errors.Errorf("unknown -target %q", v)
		}
		state.target = st
		return nil
	})

	fs.Func("shaderin", "input HLSL shader model: hlsl3|hlsl4|hlsl5|auto", func(v string) error {
		iv, ok := inputVersionNames[v]
		if !ok {
			return errors.Errorf("unknown -shaderin %q", v)
		}
		state.shaderin = iv
		return nil
	})

	fs.Func("shaderout", "output GLSL/ESSL/VKSL version, e.g. glsl330, essl300, vksl450, auto", func(v string) error {
		ov, ok := outputVersionNames[v]
		if !ok {
			return errors.Errorf("unknown -shaderout %q", v)
		}
		state.shaderout = ov
		return nil
	})

	fs.Func("D", "define IDENT[=VALUE] for the frontend's preprocessor", func(v string) error {
		ident, value, _ := strings.Cut(v, "=")
		state.defines[strcase.ToScreamingSnake(ident)] = value
		return nil
	})

	registerToggle(fs, "warn", &state.warn)
	registerToggle(fs, "blanks", &state.blanks)
	registerToggle(fs, "line-marks", &state.lineMarks)
	registerToggle(fs, "dump-ast", &state.dumpAST)
	registerToggle(fs, "pponly", &state.pponly)
	registerToggle(fs, "comments", &state.comments)
}

// registerToggle binds a `-name on|off` boolean flag (true/false are
// also accepted). The flag always takes a value: a bare `-name` with no
// argument is not accepted, and an empty value (`-name=`) counts as "on".
func registerToggle(fs *flag.FlagSet, name string, dest *bool) {
	fs.Func(name, name+" [on|off]", func(v string) error {
		switch strings.ToLower(v) {
		case "", "on", "true":
			*dest = true
		case "off", "false":
			*dest = false
		default:
			return errors.Errorf("-%s: expected on or off, got %q", name, v)
		}
		return nil
	})
}

var stageNames = map[string]xsc.ShaderStage{
	"vertex":          xsc.StageVertex,
	"fragment":        xsc.StageFragment,
	"geometry":        xsc.StageGeometry,
	"tess-control":    xsc.StageTessControl,
	"tess-evaluation": xsc.StageTessEval,
	"compute":         xsc.StageCompute,
}

var inputVersionNames = map[string]version.InputVersion{
	"hlsl3": version.HLSL3,
	"hlsl4": version.HLSL4,
	"hlsl5": version.HLSL5,
	"auto":  version.InputAuto,
}

var outputVersionNames = map[string]version.OutputVersion{
	"glsl110": version.GLSL110,
	"glsl120": version.GLSL120,
	"glsl130": version.GLSL130,
	"glsl140": version.GLSL140,
	"glsl150": version.GLSL150,
	"glsl330": version.GLSL330,
	"glsl400": version.GLSL400,
	"glsl410": version.GLSL410,
	"glsl420": version.GLSL420,
	"glsl430": version.GLSL430,
	"glsl440": version.GLSL440,
	"glsl450": version.GLSL450,
	"glsl460": version.GLSL460,
	"essl100": version.ESSL100,
	"essl300": version.ESSL300,
	"essl310": version.ESSL310,
	"essl320": version.ESSL320,
	"vksl450": version.VKSL450,

	"auto":      version.OutputAutoGLSL,
	"auto-glsl": version.OutputAutoGLSL,
	"auto-essl": version.OutputAutoESSL,
	"auto-vksl": version.OutputAutoVKSL,
}

func translateFile(path string, state *fileOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	source := io.Reader(f)
	if len(state.defines) > 0 {
		source = io.MultiReader(definesPreamble(state.defines), f)
	}

	out := os.Stdout
	if state.output != "" {
		w, err := os.Create(state.output)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer w.Close()
		out = w
	}

	log := &diag.List{}
	in := xsc.ShaderInput{
		SourceCode:     source,
		EntryPoint:     state.entry,
		ShaderTarget:   state.target,
		ShaderVersion:  state.shaderin,
		IncludeHandler: dirIncludeHandler(filepath.Dir(path)),
	}
	shaderOut := xsc.ShaderOutput{
		SourceCode:    out,
		ShaderVersion: state.shaderout,
		Options: xsc.Options{
			Indent:          state.indent,
			Prefix:          state.prefix,
			WarningFlags:    warningFlags(state.warn),
			Blanks:          state.blanks,
			LineMarks:       state.lineMarks,
			DumpAST:         state.dumpAST,
			PreprocessOnly:  state.pponly,
			KeepComments:    state.comments,
			ExplicitBinding: false,
			AllowExtensions: true,
		},
	}

	ok, err := xsc.Translate(defaultFrontend{}, in, shaderOut, log)
	reportDiagnostics(path, log)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("translation failed")
	}
	return nil
}

func warningFlags(warn bool) xsc.WarningFlags {
	if warn {
		return xsc.WarnAll
	}
	return xsc.WarnNone
}

func reportDiagnostics(path string, log *diag.List) {
	items := log.Items()
	sort.SliceStable(items, func(i, j int) bool { return items[i].Severity > items[j].Severity })
	for _, d := range items {
		fmt.Fprintf(os.Stderr, "%s:%s\n", path, d.Error())
	}
}

// definesPreamble renders -D macros as `#define` lines prepended ahead
// of the real source, since the Frontend interface has no macro
// parameter of its own — preprocessing (including macro expansion) is
// an external collaborator's job (spec.md §1), and text injection is
// the one channel the CLI has into it.
func definesPreamble(defines map[string]string) *bytes.Reader {
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		if v := defines[name]; v != "" {
			fmt.Fprintf(&buf, "#define %s %s\n", name, v)
		} else {
			fmt.Fprintf(&buf, "#define %s\n", name)
		}
	}
	return bytes.NewReader(buf.Bytes())
}

// dirIncludeHandler resolves `#include` filenames relative to dir, the
// including file's own directory.
func dirIncludeHandler(dir string) xsc.IncludeHandler {
	return func(filename string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, filename))
	}
}

// defaultFrontend is the CLI's Frontend implementation: none. Lexing,
// preprocessing, and parsing HLSL are external-collaborator concerns
// (spec.md §1); wiring a real one in is the integration point that
// turns this driver into a working end-to-end compiler.
type defaultFrontend struct{}

func (defaultFrontend) Parse(source io.Reader, includeHandler xsc.IncludeHandler) (*ast.Program, error) {
	return nil, errors.New("no HLSL frontend registered: cmd/xscc's defaultFrontend is the integration point for a real lexer/parser")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: xscc [options] shader.hlsl [options] shader2.hlsl ...\n\n")
	fmt.Fprintf(os.Stderr, "Each shader file is preceded by the options that apply to it; an\n")
	fmt.Fprintf(os.Stderr, "option not repeated stays in effect for the next file.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fs := flag.NewFlagSet("xscc", flag.ContinueOnError)
	registerFlags(fs, newFileOptions())
	fs.PrintDefaults()
}
