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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := `
modulePaths: [lib, /opt/zb]
extension: .zb
trace: true
color: never
`
	cfg, err := ParseConfig([]byte(data), "/work/zbc.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib", "/opt/zb"}, cfg.ModulePaths)
	assert.Equal(t, ".zb", cfg.Extension)
	assert.True(t, cfg.Trace)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, []string{filepath.Join("/work", "lib"), "/opt/zb"}, cfg.SearchPaths())
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), "/work/zbc.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultExtension, cfg.Extension)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, []string{"/work"}, cfg.SearchPaths())
	assert.False(t, cfg.Trace)

	def := Default("/work")
	assert.Equal(t, cfg.Extension, def.Extension)
	assert.Equal(t, cfg.SearchPaths(), def.SearchPaths())
}

func TestParseConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"color":     "color: sometimes",
		"extension": "extension: zb",
		"paths":     "modulePaths: ['']",
		"syntax":    "modulePaths: [",
	}
	for name, data := range cases {
		_, err := ParseConfig([]byte(data), "zbc.yaml")
		assert.Error(t, err, name)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Empty(t, path)

	want := filepath.Join(root, "zbc.yaml")
	require.NoError(t, os.WriteFile(want, []byte("trace: true\n"), 0o644))
	path, err = FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Trace)
	assert.Equal(t, root, cfg.Dir)
}
