// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/cond"
)

type dogBite struct{}

func (dogBite) Error() string            { return "bitten" }
func (dogBite) Category() *cond.Category { return DogError }

func TestConditionMessage(t *testing.T) {
	c := cond.New(BirdError, "tweet")
	assert.Equal(t, "tweet", c.Error())
	assert.Same(t, BirdError, c.Category())

	c = cond.New(nil, "")
	assert.Same(t, cond.Root, c.Category())
	assert.Equal(t, "condition", c.Error())

	c = cond.Wrap(DogError, io.ErrUnexpectedEOF)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), c.Error())
	assert.ErrorIs(t, c, io.ErrUnexpectedEOF)

	c = cond.Newf(BirdError, "%d birds", 3)
	assert.Equal(t, "3 birds", c.Message())
}

func TestConditionFields(t *testing.T) {
	c := cond.New(AnimalError, "escaped").With("name", "rex").With("legs", 4)

	v, ok := c.Field("name")
	require.True(t, ok)
	assert.Equal(t, "rex", v)
	_, ok = c.Field("wings")
	assert.False(t, ok)

	fields := c.Fields()
	fields["name"] = "fido"
	v, _ = c.Field("name")
	assert.Equal(t, "rex", v, "Fields returns a copy")
}

func TestConditionDecode(t *testing.T) {
	c := cond.New(AnimalError, "escaped").With("name", "rex").With("legs", 4)

	var animal struct {
		Name string
		Legs int `mapstructure:"legs"`
	}
	require.NoError(t, c.Decode(&animal))
	assert.Equal(t, "rex", animal.Name)
	assert.Equal(t, 4, animal.Legs)

	var wrong struct{ Name int }
	assert.Error(t, c.Decode(&wrong))
}

func TestConditionFrames(t *testing.T) {
	c := cond.New(BirdError, "here")
	frames := c.Frames()
	require.NotEmpty(t, frames)
	assert.True(t, strings.HasSuffix(frames[0].Function, "TestConditionFrames"), frames[0].Function)
}

func TestAsCondition(t *testing.T) {
	assert.Nil(t, cond.AsCondition(nil))

	orig := cond.New(BirdError, "x")
	assert.Same(t, orig, cond.AsCondition(fmt.Errorf("wrapped: %w", orig)))

	c := cond.AsCondition(dogBite{})
	assert.Same(t, DogError, c.Category())
	assert.Equal(t, "bitten", c.Error())

	plain := errors.New("plain")
	c = cond.AsCondition(plain)
	assert.Same(t, cond.ErrorCategory, c.Category())
	assert.ErrorIs(t, c, plain)
	frames := c.Frames()
	require.NotEmpty(t, frames)
	assert.True(t, strings.HasSuffix(frames[0].Function, "TestAsCondition"), frames[0].Function)
}
