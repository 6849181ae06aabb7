// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators every Inkwell request passes through.

Order as mounted by the api package:

	[chi RealIP] -> RequestID -> StructuredLogger -> Metrics
	             -> PanicRecovery -> RateLimit -> CORS -> Authenticate

chi's RealIP is only mounted when TRUST_PROXY_HEADERS is set. Without it a
caller could pick their own rate-limit bucket by sending X-Forwarded-For.

Route-level guards ([RequireAuth], [RequireAuthor]) are applied per handler.
*/
package middleware

import (
	"net"
	"net/http"
)

// statusRecorder remembers the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(writer http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

// RealIP returns the client address used for rate limiting and access logs.
// It reads the socket peer only. Behind a trusted proxy, chi's RealIP is
// mounted first and rewrites RemoteAddr from the forwarded headers.
func RealIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
