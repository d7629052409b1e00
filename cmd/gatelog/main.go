// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Command gatelog is the operational companion to the gatelog library:
// it validates configuration, prints the resolved policy, and pushes a
// synthetic event through the real pipeline to verify syslog delivery.
// It deliberately runs no server; gatelog's core is a plugin, not a
// listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gatelog/internal/classifier"
	"github.com/tomtom215/gatelog/internal/config"
	"github.com/tomtom215/gatelog/internal/logging"
	"github.com/tomtom215/gatelog/internal/plugin"
	"github.com/tomtom215/gatelog/internal/policy"
	"github.com/tomtom215/gatelog/internal/sink"
)

func main() {
	var (
		configPath   = flag.String("config", "", "config file path (default: search standard locations)")
		validateOnly = flag.Bool("validate", false, "load and validate the configuration, then exit")
		resolve      = flag.Bool("resolve", false, "print the resolved policy snapshot as JSON")
		testEvent    = flag.Bool("test-event", false, "emit a synthetic login event through the pipeline")
		dryRun       = flag.Bool("dry-run", false, "with -test-event, write to stdout instead of syslog")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatelog: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LoggingConfigFor())

	switch {
	case *validateOnly:
		fmt.Println("configuration ok")

	case *resolve:
		out, err := json.MarshalIndent(cfg.PolicyDecision(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "gatelog: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))

	case *testEvent:
		emitTestEvent(cfg, *dryRun)

	default:
		flag.Usage()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// emitTestEvent sends one AuthAccepted event for a synthetic user through
// the real classifier, formatter, and sink, so operators can confirm the
// line reaches their log pipeline.
func emitTestEvent(cfg *config.Config, dryRun bool) {
	var factory sink.Factory
	if dryRun {
		factory = sink.WriterFactory(os.Stdout)
	}

	cls := classifier.New(policy.NewStore(cfg.PolicyDecision()), nil, nil)
	p := plugin.New(cfg.PluginConfig(), cls, factory)

	ctx := logging.ContextWithNewCorrelationID(context.Background())
	p.OnLoginSuccess(ctx, "gatelog-test")
	fmt.Println("test event emitted")
}
