// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pwa

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	b := FromEnv(envOf(nil), started)

	d := b.Descriptor()
	assert.Equal(t, "1.0.0", d.Version)
	assert.Equal(t, "dev", d.Commit)
	assert.Equal(t, "local", d.DeploymentID)
	assert.Equal(t, started, d.BuildTime)

	info := b.Info()
	assert.Equal(t, "development", info.BuildID)
	assert.Equal(t, "local", info.DeploymentID)
	assert.Equal(t, "unknown", info.CommitSHA)
	assert.Equal(t, "development", info.Environment)
}

func TestFromEnv_Values(t *testing.T) {
	b := FromEnv(envOf(map[string]string{
		"APP_VERSION":   "2.1.0",
		"BUILD_ID":      "b-42",
		"DEPLOYMENT_ID": "dpl_abc",
		"COMMIT_SHA":    "9f8e7d",
		"ENVIRONMENT":   "production",
	}), started)

	assert.Equal(t, Descriptor{
		Version:      "2.1.0",
		BuildTime:    started,
		Commit:       "9f8e7d",
		DeploymentID: "dpl_abc",
	}, b.Descriptor())

	assert.Equal(t, BuildInfo{
		BuildID:      "b-42",
		DeploymentID: "dpl_abc",
		CommitSHA:    "9f8e7d",
		BuildTime:    started,
		Environment:  "production",
	}, b.Info())
}

func TestDescriptor_JSONFields(t *testing.T) {
	data, err := json.Marshal(FromEnv(envOf(nil), started).Descriptor())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "local", raw["deploymentId"])
	assert.Equal(t, "2025-03-10T12:00:00Z", raw["buildTime"])
	assert.Contains(t, raw, "version")
	assert.Contains(t, raw, "commit")
}

func TestWriteDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	want := FromEnv(envOf(map[string]string{"DEPLOYMENT_ID": "dpl_1"}), started).Descriptor()

	require.NoError(t, WriteDescriptor(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Descriptor
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestWriteDescriptor_BadPath(t *testing.T) {
	err := WriteDescriptor(filepath.Join(t.TempDir(), "missing", "version.json"), Descriptor{})
	assert.Error(t, err)
}

func TestRenderServiceWorker(t *testing.T) {
	render := func(id string) string {
		var buf bytes.Buffer
		require.NoError(t, RenderServiceWorker(&buf, Build{DeploymentID: id}))
		return buf.String()
	}

	a := render("dpl_a")
	b := render("dpl_b")

	assert.NotEqual(t, a, b, "each deployment must yield a different worker")
	assert.Contains(t, a, "const DEPLOYMENT_ID = 'dpl_a'")
	assert.Contains(t, a, "habitpair-dpl_a")
	assert.Contains(t, a, "'"+MessageSWActivated+"'")
	assert.Contains(t, a, "'"+MessageSkipWaiting+"'")
	assert.Contains(t, a, "self.skipWaiting()")
	assert.Contains(t, a, "self.clients.claim()")
	assert.Contains(t, a, "caches.delete(name)")
}

func TestRenderServiceWorker_EscapesDeploymentID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderServiceWorker(&buf, Build{DeploymentID: "x';alert(1)//"}))

	assert.False(t, strings.Contains(buf.String(), "'x';alert(1)//'"))
}

func TestDescriptor_Age(t *testing.T) {
	tests := []struct {
		name  string
		built time.Time
		want  string
	}{
		{"just now", started, "now"},
		{"ninety minutes", started.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", started.Add(-5 * time.Hour), "5 hours ago"},
		{"days", started.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"clock skew", started.Add(10 * time.Minute), "10 minutes from now"},
		{"no build time", time.Time{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{DeploymentID: "dpl_1", BuildTime: tt.built}
			assert.Equal(t, tt.want, d.Age(started))
		})
	}
}
