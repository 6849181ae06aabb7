// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN verifies scheme rewriting for the golang-migrate driver.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://u:p@db:5432/inkwell?sslmode=disable", "pgx5://u:p@db:5432/inkwell?sslmode=disable"},
		{"postgresql://u:p@db/inkwell", "pgx5://u:p@db/inkwell"},
		{"pgx5://u:p@db/inkwell", "pgx5://u:p@db/inkwell"},
		{"host=db user=u dbname=inkwell", "host=db user=u dbname=inkwell"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}
