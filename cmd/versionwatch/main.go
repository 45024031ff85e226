// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command versionwatch polls a deployment's version.json and runs a hook
// once the deployment changes.
//
//	versionwatch -url https://habits.example.com/version.json -hook "systemctl restart kiosk"
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielhkuo/habitpair/updatecheck"
)

func main() {
	fs := flag.NewFlagSet("versionwatch", flag.ExitOnError)
	url := fs.String("url", "http://localhost:3318/version.json", "Version descriptor URL")
	interval := fs.Duration("interval", updatecheck.DefaultInterval, "Time between checks")
	delay := fs.Duration("delay", updatecheck.DefaultReloadDelay, "Wait before running the hook")
	hook := fs.String("hook", "", "Shell command to run when a new deployment is detected")
	fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fetcher := updatecheck.HTTPFetcher{
		URL:    *url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}

	var checker *updatecheck.Checker
	checker = updatecheck.New(fetcher, func() {
		defer cancel()
		if d, ok := checker.Latest(); ok {
			slog.Info("new deployment detected",
				"was", checker.DeploymentID(),
				"now", d.DeploymentID,
				"version", d.Version,
				"built", d.Age(time.Now()),
			)
		}
		if *hook == "" {
			return
		}
		cmd := exec.Command("sh", "-c", *hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			slog.Error("hook failed", "hook", *hook, "error", err)
			return
		}
		slog.Info("hook finished", "hook", *hook)
	}, updatecheck.WithInterval(*interval), updatecheck.WithReloadDelay(*delay))

	slog.Info("watching", "url", *url, "interval", *interval)
	if err := checker.Run(ctx); err != nil {
		slog.Error("watch stopped", "error", err)
		os.Exit(1)
	}

	if !checker.Reloaded() {
		slog.Info("stopped without a new deployment")
	}
}
