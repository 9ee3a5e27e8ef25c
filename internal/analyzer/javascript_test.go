package analyzer

import (
	"strings"
	"testing"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsSample = `const axios = require('axios');
import React from 'react';

function loadUsers() {
  return axios.get('/api/users');
}

class CartService {
  addItem(item) {
    this.items.push(item);
  }
}

const submit = async (data) => {
  return data;
};

app.get('/users', listUsers);

socket.on('connect', () => {
  console.log('ready');
});

module.exports.handler = function (event) {
  return event;
};
`

func TestJSExtractor_Symbols(t *testing.T) {
	e := NewJSExtractor("")

	ext := e.Extract("src/app.js", []byte(jsSample))

	ids := make(map[string]models.SymbolKind)
	for _, sym := range ext.Symbols {
		ids[sym.ID] = sym.Kind
	}

	assert.Equal(t, models.SymbolFunction, ids["src.app.loadUsers"])
	assert.Equal(t, models.SymbolClass, ids["src.app.CartService"])
	assert.Equal(t, models.SymbolMethod, ids["src.app.addItem"])
	assert.Equal(t, models.SymbolFunction, ids["src.app.submit"])
	assert.Equal(t, models.SymbolRouteHandler, ids["src.app.GET_users"])
	assert.Equal(t, models.SymbolEventHandler, ids["src.app.socket_on_connect"])
	assert.Equal(t, models.SymbolFunction, ids["src.app.handler"])
}

func TestJSExtractor_RouteSymbolNames(t *testing.T) {
	e := NewJSExtractor("")

	tests := []struct {
		name string
		line string
		id   string
	}{
		{"root path", `app.get('/', home);`, "mod.GET_"},
		{"nested path", `router.post('/api/users/:id', update);`, "mod.POST_api_users__id"},
		{"delete verb", `app.delete('/items/:id', remove);`, "mod.DELETE_items__id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := e.Extract("mod.js", []byte(tt.line))
			require.Len(t, ext.Symbols, 1)
			assert.Equal(t, tt.id, ext.Symbols[0].ID)
			assert.Equal(t, models.SymbolRouteHandler, ext.Symbols[0].Kind)
		})
	}
}

func TestJSExtractor_ShorthandExclusions(t *testing.T) {
	e := NewJSExtractor("")

	src := `if (ready) {
}
for (let i = 0; i < n; i++) {
}
switch (mode) {
}
`
	ext := e.Extract("mod.js", []byte(src))
	assert.Empty(t, ext.Symbols)
}

func TestJSExtractor_Dependencies(t *testing.T) {
	e := NewJSExtractor("")

	ext := e.Extract("src/app.js", []byte(jsSample))
	assert.Equal(t, []string{"axios", "react"}, ext.Dependencies)
}

func TestJSExtractor_EntryPoints(t *testing.T) {
	e := NewJSExtractor("")

	ext := e.Extract("src/app.js", []byte(jsSample))
	require.Len(t, ext.EntryPoints, 1)
	assert.Equal(t, models.EntryPoint{
		File: "src/app.js", Method: "GET", Path: "/users", Handler: "listUsers",
	}, ext.EntryPoints[0])
}

func TestBraceEndLine(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start int
		want  int
	}{
		{
			name:  "multi-line function",
			src:   "function f() {\n  return 1;\n}\n",
			start: 0,
			want:  3,
		},
		{
			name:  "single line",
			src:   "function f() { return 1; }\n",
			start: 0,
			want:  1,
		},
		{
			name:  "brace inside string ignored",
			src:   "function f() {\n  const s = '}';\n  return s;\n}\n",
			start: 0,
			want:  4,
		},
		{
			name:  "opening brace on its own line",
			src:   "function f()\n{\n  return 1;\n}\n",
			start: 0,
			want:  4,
		},
		{
			name:  "no brace falls back to next line",
			src:   "app.get('/x', h);\nmore();\n",
			start: 0,
			want:  2,
		},
		{
			name:  "unclosed falls back",
			src:   "function f() {\n  broken(\n",
			start: 0,
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(tt.src, "\n")
			assert.Equal(t, tt.want, braceEndLine(lines, tt.start, 1000))
		})
	}
}

func TestStripJSStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`const s = "a{b}c";`, `const s = "";`},
		{`const t = 'x';`, `const t = '';`},
		{"const u = `tpl{}`;", "const u = ``;"},
		{`const v = "esc\"}";`, `const v = "";`},
		{`plain { code }`, `plain { code }`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripJSStrings(tt.in))
	}
}
