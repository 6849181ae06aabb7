// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command inkwellctl is the operator CLI for Inkwell.
//
// It shares configuration and wiring with the API server and is meant for
// deploy hooks and local development:
//
//	inkwellctl migrate up
//	inkwellctl chapters audit
//	inkwellctl token mint --user <uuid> --role author --ttl 1h
//	inkwellctl version
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes human-readable logs to stderr so stdout stays parseable.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

