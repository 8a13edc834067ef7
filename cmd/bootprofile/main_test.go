package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bootprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", path}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestResolve_Properties(t *testing.T) {
	out, err := run(t, "resolve", "--db", "mysql", "--tls", "false", "--port", "8081")
	require.NoError(t, err)

	assert.Contains(t, out, "spring.datasource.url=jdbc:mysql://localhost/filiale\n")
	assert.Contains(t, out, "server.ssl.enabled=false\n")
	assert.Contains(t, out, "server.port=8081\n")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.IsIncreasing(t, lines)
}

func TestResolve_TaskJSON(t *testing.T) {
	out, err := run(t, "resolve", "test", "--db", "oracle", "--fork", "3", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Task       string            `json:"task"`
		Properties map[string]string `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "test", doc.Task)
	assert.Equal(t, "3", doc.Properties[profile.KeyForkCount])
	assert.Equal(t, "jdbc:oracle:thin:@localhost/XEPDB1", doc.Properties[profile.KeyDatasourceURL])
}

func TestResolve_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unsupported selector", []string{"resolve", "--db", "sqlite"}, errs.ExitConfiguration},
		{"bad port", []string{"resolve", "--port", "eighty"}, errs.ExitParse},
		{"bad fork", []string{"resolve", "--fork", "-3"}, errs.ExitParse},
		{"bad task", []string{"resolve", "deploy"}, errs.ExitFailure},
		{"bad format", []string{"resolve", "-o", "toml"}, errs.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.ExitCode(err))
			assert.Empty(t, out, "no partial profile may be printed")
		})
	}
}

func TestDBInit_MissingScripts(t *testing.T) {
	_, err := run(t, "db", "init", "--db", "mysql", "--scripts", t.TempDir())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDBPing_Oracle(t *testing.T) {
	_, err := run(t, "db", "ping", "--db", "oracle")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestTaskNames(t *testing.T) {
	assert.Equal(t, []string{"run", "test", "image"}, taskNames())
}

func TestParamFlags_Tag(t *testing.T) {
	p := paramFlags{}
	assert.Equal(t, "1.0.0", p.tag(profile.DefaultProject()))

	p.Tag = "edge"
	assert.Equal(t, "edge", p.tag(profile.DefaultProject()))
}
