// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pwa

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// Messages exchanged between the service worker and its pages
const (
	MessageSWActivated = "SW_ACTIVATED"
	MessageSkipWaiting = "SKIP_WAITING"
)

// WorkerMessage is the payload of a postMessage call in either direction
type WorkerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// Descriptor is the body of /version.json
type Descriptor struct {
	Version      string    `json:"version"`
	BuildTime    time.Time `json:"buildTime"`
	Commit       string    `json:"commit"`
	DeploymentID string    `json:"deploymentId"`
}

// BuildInfo is the body of /api/build-id
type BuildInfo struct {
	BuildID      string    `json:"buildId"`
	DeploymentID string    `json:"deploymentId"`
	CommitSHA    string    `json:"commitSha"`
	BuildTime    time.Time `json:"buildTime"`
	Environment  string    `json:"environment"`
}

// Defaults for unset environment variables
const (
	DefaultVersion      = "1.0.0"
	DefaultBuildID      = "development"
	DefaultDeploymentID = "local"
	DefaultEnvironment  = "development"
)

// Build identifies one deployment of the service
type Build struct {
	Version      string
	BuildID      string
	DeploymentID string
	// Empty when unknown; Descriptor and Info substitute their own placeholder
	CommitSHA   string
	Environment string
	BuildTime   time.Time
}

// FromEnv reads the build identity from APP_VERSION, BUILD_ID, DEPLOYMENT_ID,
// COMMIT_SHA and ENVIRONMENT. started is reported as the build time.
func FromEnv(getenv func(string) string, started time.Time) Build {
	or := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	return Build{
		Version:      or("APP_VERSION", DefaultVersion),
		BuildID:      or("BUILD_ID", DefaultBuildID),
		DeploymentID: or("DEPLOYMENT_ID", DefaultDeploymentID),
		CommitSHA:    getenv("COMMIT_SHA"),
		Environment:  or("ENVIRONMENT", DefaultEnvironment),
		BuildTime:    started.UTC(),
	}
}

func (b Build) Descriptor() Descriptor {
	commit := b.CommitSHA
	if commit == "" {
		commit = "dev"
	}
	return Descriptor{
		Version:      b.Version,
		BuildTime:    b.BuildTime,
		Commit:       commit,
		DeploymentID: b.DeploymentID,
	}
}

// Age describes how long before now the deployment was built, such as
// "3 hours ago". A descriptor without a build time is "unknown".
func (d Descriptor) Age(now time.Time) string {
	if d.BuildTime.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(d.BuildTime, now, "ago", "from now")
}

func (b Build) Info() BuildInfo {
	commit := b.CommitSHA
	if commit == "" {
		commit = "unknown"
	}
	return BuildInfo{
		BuildID:      b.BuildID,
		DeploymentID: b.DeploymentID,
		CommitSHA:    commit,
		BuildTime:    b.BuildTime,
		Environment:  b.Environment,
	}
}

// WriteDescriptor writes d as indented JSON to path
func WriteDescriptor(path string, d Descriptor) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version descriptor: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write version descriptor: %w", err)
	}
	return nil
}

//go:embed sw.js.tmpl
var serviceWorkerSource string

var serviceWorkerTemplate = template.Must(template.New("sw.js").Parse(serviceWorkerSource))

type serviceWorkerData struct {
	DeploymentID string
	CacheName    string
	SWActivated  string
	SkipWaiting  string
}

// RenderServiceWorker writes the service worker script for b. The
// deployment id is baked into the script, so every deployment produces a
// byte-different worker and browsers install it as an update.
func RenderServiceWorker(w io.Writer, b Build) error {
	return serviceWorkerTemplate.Execute(w, serviceWorkerData{
		DeploymentID: b.DeploymentID,
		CacheName:    "habitpair-" + b.DeploymentID,
		SWActivated:  MessageSWActivated,
		SkipWaiting:  MessageSkipWaiting,
	})
}
