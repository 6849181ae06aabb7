// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// writeKeys stores a fresh RSA key pair as PEM files and returns their paths.
func writeKeys(t *testing.T) (string, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), 0o600))
	require.NoError(t, os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	}), 0o600))

	return privatePath, publicPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

/*
TestTokenMint_Verifiable verifies that a minted token passes verification
with the matching public key and carries the requested identity.
*/
func TestTokenMint_Verifiable(t *testing.T) {
	privatePath, publicPath := writeKeys(t)
	userID := "0190a6b2-7c1e-7a00-8000-000000000001"

	out, err := run(t, "token", "mint",
		"--user", userID,
		"--email", "writer@example.com",
		"--role", "author",
		"--ttl", "10m",
		"--private-key", privatePath,
		"--public-key", publicPath,
	)
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("", publicPath, constants.AuthIssuer)
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "writer@example.com", claims.Email)
	assert.Equal(t, string(sec.RoleAuthor), claims.Role)
}

/*
TestTokenMint_Rejects verifies argument validation before any key is read.
*/
func TestTokenMint_Rejects(t *testing.T) {
	privatePath, publicPath := writeKeys(t)

	cases := map[string][]string{
		"unknown role":  {"--role", "overlord"},
		"negative ttl":  {"--ttl=-1m"},
		"malformed id":  {"--user", "not-a-uuid"},
		"missing a key": {"--public-key="},
	}

	for name, extra := range cases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"token", "mint", "--private-key", privatePath, "--public-key", publicPath}, extra...)
			_, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

/*
TestDatabaseCommands_NeedOnlyDatabaseURL verifies that migrate and audit
complain about DATABASE_URL alone, not the API's cache or token settings.
*/
func TestDatabaseCommands_NeedOnlyDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "")

	for _, args := range [][]string{{"migrate", "up"}, {"chapters", "audit"}} {
		_, err := run(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
		assert.NotContains(t, err.Error(), "REDIS_URL")
		assert.NotContains(t, err.Error(), "JWT_PUBLIC_KEY_PATH")
	}
}

/*
TestVersion verifies the version subcommand output.
*/
func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, constants.AppName+" "+constants.AppVersion+"\n", out)
}

/*
TestWriteReport verifies that a dirty audit is printed and still fails.
*/
func TestWriteReport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, &chapter.AuditReport{}))

	out.Reset()
	err := writeReport(&out, &chapter.AuditReport{OrphanBlobs: []string{"algo-notes/chapters/gone.md"}})
	assert.ErrorIs(t, err, errAuditDirty)
	assert.Contains(t, out.String(), `"algo-notes/chapters/gone.md"`)
}
