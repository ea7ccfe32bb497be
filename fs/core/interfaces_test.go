package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/go/remotefs/fs/core"
)

func TestBackendType_String(t *testing.T) {
	tests := []struct {
		typ  core.BackendType
		want string
	}{
		{core.BackendTypeUnknown, "unknown"},
		{core.BackendTypeLocal, "local"},
		{core.BackendTypeMemory, "memory"},
		{core.BackendTypeRemote, "remote"},
		{core.BackendTypeGit, "git"},
		{core.BackendType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"home/user", "/home/user"},
		{"/home/user/", "/home/user"},
		{"/home/./user/../other", "/home/other"},
		{`C:\Users\me`, "/C:/Users/me"},
		{`\tmp\x`, "/tmp/x"},
		{"/../..", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, core.Clean(tt.in))
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "/", core.Name("/"))
	assert.Equal(t, "/", core.Name(""))
	assert.Equal(t, "user", core.Name("/home/user/"))
	assert.Equal(t, "file.txt", core.Name("docs/file.txt"))
}

func TestFileType(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"main.go", "go", true},
		{"archive.tar.gz", "gz", true},
		{".bashrc", "", false},
		{".config.yaml", "yaml", true},
		{"Makefile", "", false},
		{"trailing.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.FileType(tt.name)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}
