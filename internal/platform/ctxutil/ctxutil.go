// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the per-request values kept in a [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/ctxkey"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// CallerSlot lets an outer middleware observe the identity resolved by an
// inner one. Contexts flow inward only, so the outer layer keeps a pointer.
type CallerSlot struct {
	claims *sec.AuthClaims
}

// Claims returns the claims recorded by [WithAuthUser], or nil for anonymous requests.
func (slot *CallerSlot) Claims() *sec.AuthClaims {
	if slot == nil {
		return nil
	}
	return slot.claims
}

// WithCallerSlot installs an empty [CallerSlot] and returns it.
func WithCallerSlot(ctx context.Context) (context.Context, *CallerSlot) {
	slot := &CallerSlot{}
	return context.WithValue(ctx, ctxkey.KeyCallerSlot, slot), slot
}

// WithAuthUser attaches verified claims and records them in the caller slot, if any.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	if slot, ok := ctx.Value(ctxkey.KeyCallerSlot).(*CallerSlot); ok {
		slot.claims = user
	}
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}

// UserID returns the authenticated caller's id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
