// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/inkwell/internal/catalog/blob"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// errAuditDirty signals a non-clean audit so the process exits non-zero.
var errAuditDirty = errors.New("chapters audit: inconsistencies found")

func rootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inkwellctl",
		Short:         "Operate an Inkwell deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(migrateCmd(), chaptersCmd(), tokenCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.AppVersion)
		},
	})

	return cmd
}

// # Migrations

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, newLogger(cfg.Debug)); err != nil {
				return err
			}

			version, dirty, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}

// # Chapters

func chaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Inspect chapter storage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "audit",
		Short: "Report chapters without a body and bodies without a chapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Debug)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			blobs := blob.NewRepository(pool)
			books := book.NewService(book.NewRepository(pool), logger)
			chapters := chapter.NewService(chapter.NewRepository(pool, blobs), blobs, books, logger)

			report, err := chapters.Audit(ctx)
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), report)
		},
	})

	return cmd
}

// writeReport prints the report as indented JSON and fails when it is not clean.
func writeReport(out io.Writer, report *chapter.AuditReport) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return err
	}

	if !report.Clean() {
		return errAuditDirty
	}
	return nil
}

// # Tokens

type mintOptions struct {
	userID         string
	username       string
	email          string
	role           string
	ttl            time.Duration
	privateKeyPath string
	publicKeyPath  string
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with access tokens",
	}

	opts := mintOptions{}
	mint := &cobra.Command{
		Use:   "mint",
		Short: "Sign a development access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := mintToken(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	mint.Flags().StringVar(&opts.userID, "user", "", "user id (uuid) carried in the token, generated when empty")
	mint.Flags().StringVar(&opts.username, "username", "", "display name claim")
	mint.Flags().StringVar(&opts.email, "email", "", "email claim")
	mint.Flags().StringVar(&opts.role, "role", string(sec.RoleReader), "role claim: reader, author or admin")
	mint.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "token lifetime")
	mint.Flags().StringVar(&opts.privateKeyPath, "private-key", os.Getenv("JWT_PRIVATE_KEY_PATH"), "PEM private key used to sign")
	mint.Flags().StringVar(&opts.publicKeyPath, "public-key", os.Getenv("JWT_PUBLIC_KEY_PATH"), "PEM public key matching the private key")

	cmd.AddCommand(mint)
	return cmd
}

func mintToken(opts mintOptions) (string, error) {
	role := sec.UserRole(opts.role)
	if !role.Valid() {
		return "", fmt.Errorf("token mint: unknown role %q", opts.role)
	}

	if opts.ttl <= 0 {
		return "", fmt.Errorf("token mint: ttl must be positive")
	}

	if opts.privateKeyPath == "" || opts.publicKeyPath == "" {
		return "", fmt.Errorf("token mint: both --private-key and --public-key are required")
	}

	userID := opts.userID
	if userID == "" {
		userID = uuid.New()
	} else if !uuid.Valid(userID) {
		return "", fmt.Errorf("token mint: --user must be a uuid")
	}

	service, err := sec.NewTokenService(opts.privateKeyPath, opts.publicKeyPath, constants.AuthIssuer)
	if err != nil {
		return "", err
	}

	return service.GenerateAccessToken(sec.TokenInput{
		UserID:     userID,
		Username:   opts.username,
		Email:      opts.email,
		Role:       role,
		TimeToLive: opts.ttl,
	})
}
