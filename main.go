// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/cmd"
	"github.com/mtreilly/arc-questbank/internal/config"
	"github.com/mtreilly/arc-questbank/internal/identity"
	"github.com/mtreilly/arc-questbank/internal/kv"
	"github.com/mtreilly/arc-questbank/internal/resttab"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-questbank: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Local storage backend selection via environment variable.
	// Default: "sqlite" (persistent). Option: "memory" (no persistence).
	// If SQLite fails (permissions, corruption), fall back to in-memory
	// so browsing still works; local annotations just won't survive.
	storage := os.Getenv("ARC_QUESTBANK_STORAGE")
	if storage == "" {
		storage = "sqlite"
	}

	var localKV kv.Store
	switch storage {
	case "sqlite":
		store, err := kv.OpenSQLite(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open local database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			localKV = kv.NewMemory()
			break
		}
		defer store.Close()
		localKV = store

	case "memory":
		localKV = kv.NewMemory()

	default:
		fmt.Fprintf(os.Stderr, "arc-questbank: unknown storage backend %q (choose sqlite or memory)\n", storage)
		os.Exit(1)
	}

	var remote *bank.RemoteStore
	if cfg.Remote.URL != "" {
		remote = bank.NewRemoteStore(resttab.New(cfg.Remote.URL, cfg.Remote.AnonKey))
	}

	content := make([]bank.ContentFile, 0, len(cfg.Content))
	for _, f := range cfg.Content {
		content = append(content, bank.ContentFile{Subject: bank.Subject(f.Subject), Path: f.Path})
	}

	opts := []bank.Option{bank.WithLogger(logger)}

	// Without a remote backend the identity signal is moot: every scope
	// resolves to the local store anyway.
	if remote != nil {
		provider := identity.NewFileProvider(cfg.SessionFile, logger)
		defer provider.Close()
		opts = append(opts, bank.WithProvider(provider))
	}

	factory := bank.NewStoreFactory(bank.NewLocalStore(localKV), remote)
	session := bank.NewSession(content, factory, opts...)

	root := cmd.NewRootCmd(cfg, session)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
