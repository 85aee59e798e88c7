// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command zbc infers the types of a module given as a YAML syntax tree, and prints the types of
// its top-level declarations.
//
//	zbc [-config zbc.yaml] [-trace] [-format text|yaml] [-color auto|always|never] file.zb.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/zoidberg"
	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/astyaml"
	"github.com/wdamron/zoidberg/internal/config"
	"github.com/wdamron/zoidberg/modules"
	"github.com/wdamron/zoidberg/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	trace      bool
	format     string
	color      string
	file       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("zbc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to zbc.yaml (default: searched from the input directory)")
	fs.BoolVar(&opts.trace, "trace", false, "log module loads and inference failures")
	fs.StringVar(&opts.format, "format", config.FormatText, "output format: text or yaml")
	fs.StringVar(&opts.color, "color", "", "colorize diagnostics: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: zbc [flags] file"+config.DefaultExtension)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected one input file")
	}
	switch opts.format {
	case config.FormatText, config.FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	switch opts.color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return nil, fmt.Errorf("unknown color mode %q", opts.color)
	}
	opts.file = fs.Arg(0)
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.FindConfig(filepath.Dir(opts.file))
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.Default(filepath.Dir(opts.file)), nil
		}
		path = found
	}
	return config.LoadConfig(path)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "zbc:", err)
		return 2
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, "zbc:", err)
		return 1
	}
	if opts.trace {
		cfg.Trace = true
	}
	if opts.color != "" {
		cfg.Color = opts.color
	}
	d := &diagnostics{w: stderr, color: useColor(cfg.Color, stderr)}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		d.report(ast.Location{Path: opts.file}, err)
		return 1
	}
	m, err := astyaml.Decode(opts.file, data)
	if err != nil {
		d.print(err.Error())
		return 1
	}

	var logger *log.Logger
	if cfg.Trace {
		logger = log.New(stderr, "zbc: ", 0)
	}
	registry := modules.NewRegistry(modules.NewFSLoader(cfg.SearchPaths(), cfg.Extension))
	registry.SetLogger(logger)
	ctx := zoidberg.NewContext()
	ctx.SetModuleLoader(registry)
	ctx.SetLogger(logger)

	root := zoidberg.NewRootScope()
	loaded, err := zoidberg.InferModule(ctx, moduleName(opts.file, cfg.Extension), m, root)
	if err != nil {
		loc := ast.Location{Path: opts.file}
		if n := ctx.InvalidNode(); n != nil {
			loc = n.Location()
		}
		d.report(loc, err)
		return 1
	}

	decls := declarations(loaded)
	if opts.format == config.FormatYAML {
		out, err := yaml.Marshal(decls)
		if err != nil {
			fmt.Fprintln(stderr, "zbc:", err)
			return 1
		}
		stdout.Write(out)
		return 0
	}
	for _, decl := range decls {
		fmt.Fprintf(stdout, "%s : %s\n", decl.Name, decl.Type)
	}
	return 0
}

func moduleName(file, ext string) string {
	base := filepath.Base(file)
	if len(base) > len(ext) && base[len(base)-len(ext):] == ext {
		return base[:len(base)-len(ext)]
	}
	return base
}

type declaration struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// declarations lists the top-level declarations of a module in source order. Interface fields
// are listed as Interface.field and Interface::static.
func declarations(m *zoidberg.LoadedModule) []declaration {
	var decls []declaration
	add := func(name string) {
		if t, ok := m.Scope.LookupLocal(name); ok {
			decls = append(decls, declaration{Name: name, Type: types.TypeString(t)})
		}
	}
	for _, n := range m.AST.Body {
		switch n := n.(type) {
		case *ast.FunctionDeclaration:
			add(n.Name)
		case *ast.ValueDeclaration:
			add(n.Name)
		case *ast.NamespaceDeclaration:
			add(n.Name)
		case *ast.Assignment:
			if id, ok := n.Target.(*ast.Identifier); ok {
				add(id.Name)
			}
		case *ast.InterfaceDeclaration:
			base, ok := m.Scope.LookupLocalType(n.Name)
			if !ok {
				continue
			}
			decls = append(decls, declaration{Name: n.Name, Type: types.TypeString(base.Self())})
			base.Fields.Range(func(name string, t types.Type) bool {
				decls = append(decls, declaration{Name: n.Name + "." + name, Type: types.TypeString(t)})
				return true
			})
			base.Statics.Range(func(name string, t types.Type) bool {
				decls = append(decls, declaration{Name: n.Name + "::" + name, Type: types.TypeString(t)})
				return true
			})
		}
	}
	for _, u := range m.AST.Imports {
		if len(u.Extractions) == 0 {
			add(u.BindingName())
		}
	}
	return dedupe(decls)
}

// Assignments may repeat a name.
func dedupe(decls []declaration) []declaration {
	seen := make(map[string]bool, len(decls))
	out := decls[:0]
	for _, d := range decls {
		if !seen[d.Name] {
			seen[d.Name] = true
			out = append(out, d)
		}
	}
	return out
}

type diagnostics struct {
	w     io.Writer
	color bool
}

func (d *diagnostics) print(msg string) {
	if d.color {
		fmt.Fprintf(d.w, "\x1b[31m%s\x1b[0m\n", msg)
		return
	}
	fmt.Fprintln(d.w, msg)
}

func (d *diagnostics) report(loc ast.Location, err error) {
	d.print(loc.String() + ": " + err.Error())
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
