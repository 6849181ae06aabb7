// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey declares the typed keys under which per-request values live
// in a [context.Context]. Only ctxutil should read or write them.
package ctxkey

// key is unexported so no other package can build an equal key.
type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser holds the verified [sec.AuthClaims] of the caller.
	KeyUser key = "user"

	// KeyLogger holds the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyCallerSlot holds the mutable slot the access logger reads after the handler returns.
	KeyCallerSlot key = "caller_slot"
)
