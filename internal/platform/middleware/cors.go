// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

const corsMaxAgeSeconds = 600

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	// AllowAll accepts every origin (development only).
	AllowAll bool
	// OriginSuffix accepts the bare domain and its subdomains over https
	// (e.g. "inkwell.app").
	OriginSuffix string
	// ExtraOrigins are exact origins, any scheme, accepted in addition to the suffix.
	ExtraOrigins []string
}

// Origins returns the allow-list handed to the CORS handler. Plain http
// origins are only accepted when listed in ExtraOrigins, since credentials
// are allowed.
func (cfg CORSConfig) Origins() []string {
	origins := make([]string, 0, len(cfg.ExtraOrigins)+2)
	if cfg.OriginSuffix != "" {
		origins = append(origins, "https://"+cfg.OriginSuffix, "https://*."+cfg.OriginSuffix)
	}
	return append(origins, cfg.ExtraOrigins...)
}

func (cfg CORSConfig) options() cors.Options {
	options := cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", constants.HeaderAuthorization, constants.HeaderContentType, constants.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeSeconds,
	}

	// A literal "*" would be sent back as-is, which browsers refuse alongside
	// credentials. Echoing the origin keeps development clients working.
	if cfg.AllowAll {
		options.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return options
}

// CORS answers preflight requests and decorates responses for allowed origins.
// Requests without an Origin header pass through untouched.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cfg.options())
}
