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

package modules_test

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/zoidberg"
	"github.com/wdamron/zoidberg/ast"
	. "github.com/wdamron/zoidberg/construct"
	"github.com/wdamron/zoidberg/modules"
	"github.com/wdamron/zoidberg/types"
)

func infer(t *testing.T, loader zoidberg.ModuleLoader, m *ast.Module) (*zoidberg.Scope, error) {
	t.Helper()
	scope := zoidberg.NewRootScope()
	ctx := zoidberg.NewContext()
	ctx.SetModuleLoader(loader)
	_, err := ctx.Infer(m, scope)
	return scope, err
}

func typeOf(t *testing.T, scope *zoidberg.Scope, name string) string {
	t.Helper()
	ty, err := scope.ResolveID(name)
	require.NoError(t, err)
	return types.TypeString(ty)
}

func TestMemoryLoader(t *testing.T) {
	src := modules.NewMemoryLoader()
	m := Module(nil, Func("f", Params(), Int(1)))
	src.Add("a.b", m)
	assert.Equal(t, []string{"a.b"}, src.Paths())

	out, err := src.Module("a.b")
	require.NoError(t, err)
	assert.NotSame(t, m, out)
	assert.Equal(t, ast.NodeString(m), ast.NodeString(out))

	_, err = src.Module("missing")
	var notFound *modules.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Module not found: missing", err.Error())
}

func TestRegistryTransitiveImports(t *testing.T) {
	src := modules.NewMemoryLoader()
	src.Add("base", Module(nil,
		Func("id", Params("x"), Ident("x")),
		Let("version", Int(3)),
	))
	src.Add("lib.text", Module([]*ast.Using{Import("base", "id")},
		Func("shout", Params("s"), Call(Ident("id"), Binary("+", Ident("s"), Str("!")))),
	))
	reg := modules.NewRegistry(src)

	scope, err := infer(t, reg, Module([]*ast.Using{Import("lib.text", "shout"), Import("base")},
		Let("loud", Call(Ident("shout"), Str("hi"))),
		Let("v", Static(Ident("base"), "version")),
	))
	require.NoError(t, err)
	assert.Equal(t, "String", typeOf(t, scope, "loud"))
	assert.Equal(t, "Int", typeOf(t, scope, "v"))
	assert.Equal(t, []string{"base", "lib.text"}, reg.Loaded())
	assert.Equal(t, []string{"base"}, reg.Imports("lib.text"))

	m, err := reg.LoadModule("base", scope.Root())
	require.NoError(t, err)
	assert.Equal(t, "base", m.AST.Path)
	assert.Equal(t, []string{"base", "lib.text"}, reg.Loaded(), "modules should be inferred once per root")

	// Another root scope infers the module again:
	_, err = infer(t, reg, Module([]*ast.Using{Import("base", "id")}))
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "lib.text", "base"}, reg.Loaded())
}

func TestRegistryImportCycle(t *testing.T) {
	src := modules.NewMemoryLoader()
	src.Add("a", Module([]*ast.Using{Import("b")}, Let("x", Int(1))))
	src.Add("b", Module([]*ast.Using{Import("c")}))
	src.Add("c", Module([]*ast.Using{Import("a")}))
	src.Add("self", Module([]*ast.Using{Import("self")}))

	var trace bytes.Buffer
	reg := modules.NewRegistry(src)
	reg.SetLogger(log.New(&trace, "", 0))

	_, err := infer(t, reg, Module([]*ast.Using{Import("a")}))
	var cycle *modules.ImportCycleError
	require.True(t, errors.As(err, &cycle), "expected import cycle, found %v", err)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycle.Paths)
	assert.Equal(t, "Import cycle: a -> b -> c -> a", cycle.Error())

	_, err = infer(t, reg, Module([]*ast.Using{Import("self")}))
	require.True(t, errors.As(err, &cycle), "expected import cycle, found %v", err)
	assert.Equal(t, []string{"self", "self"}, cycle.Paths)
	assert.Empty(t, reg.Loaded())
}

func TestRegistryMissingImport(t *testing.T) {
	src := modules.NewMemoryLoader()
	src.Add("a", Module([]*ast.Using{Import("gone")}))
	var trace bytes.Buffer
	reg := modules.NewRegistry(src)
	reg.SetLogger(log.New(&trace, "", 0))

	_, err := infer(t, reg, Module([]*ast.Using{Import("a")}))
	var resolution *zoidberg.ModuleResolutionError
	require.True(t, errors.As(err, &resolution), "expected module resolution error, found %v", err)
	assert.Equal(t, "gone", resolution.Path)
	var notFound *modules.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Contains(t, trace.String(), "cannot read module gone imported by a")
}

const textModule = `
kind: Module
body:
  - kind: FunctionDeclaration
    name: size
    params:
      - name: s
        hint: String
    body:
      - {kind: MemberAccess, object: {kind: Identifier, name: s}, name: length}
`

func TestFSLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "std"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "std", "text.zb.yaml"), []byte(textModule), 0o644))

	src := modules.NewFSLoader([]string{filepath.Join(dir, "missing"), dir}, ".zb.yaml")
	file, err := src.Resolve("std.text")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "std", "text.zb.yaml"), file)

	m, err := src.Module("std.text")
	require.NoError(t, err)
	assert.Equal(t, "std.text", m.Path)
	assert.Equal(t, file, m.Body[0].Location().Path)

	scope, err := infer(t, modules.NewRegistry(src), Module([]*ast.Using{Import("std.text", "size")}))
	require.NoError(t, err)
	assert.Equal(t, "(String) -> Int", typeOf(t, scope, "size"))

	_, err = src.Module("std.none")
	var notFound *modules.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Len(t, notFound.Searched, 2)

	for _, bad := range []string{"std..text", "..", "a/b", ""} {
		_, err = src.Resolve(bad)
		assert.Error(t, err, bad)
	}
}
