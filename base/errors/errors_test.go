// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
	assert.Equal(t, 3, Log1(3, err))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("boom")) })
	assert.Equal(t, 5, Must1(5, nil))
	assert.Panics(t, func() { Must1(5, New("boom")) })
}

func TestWrap(t *testing.T) {
	base := New("base")
	err := fmt.Errorf("outer: %w", base)
	assert.True(t, Is(err, base))
	assert.True(t, Is(Join(nil, err), base))
	assert.Nil(t, Join(nil, nil))
}

type codeError struct{ code int }

func (e *codeError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", &codeError{code: 7})
	var ce *codeError
	assert.True(t, As(err, &ce))
	assert.Equal(t, 7, ce.code)
	assert.False(t, As(New("plain"), &ce))
}
