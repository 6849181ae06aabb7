// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/uuid"
)

/*
TestNew verifies that generated ids are valid and time-ordered.
*/
func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
}

/*
TestValid rejects malformed ids.
*/
func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid("algo-notes"))
	assert.False(t, uuid.Valid(""))
	assert.True(t, uuid.Valid("0190a6a8-1c2b-7c3d-8e4f-5a6b7c8d9e0f"))
}
