// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses ?page=&limit= and builds the matching "meta" block.
//
// Pages are 1-indexed. Out-of-range or malformed values fall back to defaults
// rather than failing the request.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip for this page.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta describes the page returned next to the data.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives the page count from total.
func NewMeta(params Params, total int) Meta {
	meta := Meta{Page: params.Page, Limit: params.Limit, Total: total}
	if params.Limit > 0 {
		meta.TotalPages = (total + params.Limit - 1) / params.Limit
	}
	return meta
}

// FromRequest reads page and limit from the query string. A limit above
// [MaxLimit] is lowered to it.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: min(limit, MaxLimit)}
}
