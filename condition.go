// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"errors"
	"fmt"
	"maps"
	"runtime"

	"github.com/mitchellh/mapstructure"
)

// maxStackDepth bounds the program counters captured per condition.
const maxStackDepth = 32

// Categorized is implemented by errors that know their own [Category].
// [AsCondition] uses it to classify foreign errors.
type Categorized interface {
	Category() *Category
}

// Condition is a signalled error-like event: a category plus a message,
// arbitrary payload fields, an optional cause and the call stack captured
// where the condition was created.
//
// Conditions are configured with [Condition.With] before they are
// signalled and must not be mutated afterwards; handlers only read them.
type Condition struct {
	category *Category
	message  string
	fields   map[string]any
	cause    error
	stack    []uintptr
}

// New creates a condition of category cat. A nil category means [Root].
func New(cat *Category, message string) *Condition {
	return newCondition(cat, message, nil, 3)
}

// Newf creates a condition with a formatted message.
func Newf(cat *Category, format string, args ...any) *Condition {
	return newCondition(cat, fmt.Sprintf(format, args...), nil, 3)
}

// Wrap creates a condition of category cat whose cause is err.
// The message is taken from err.
func Wrap(cat *Category, err error) *Condition {
	return newCondition(cat, "", err, 3)
}

func newCondition(cat *Category, message string, cause error, skip int) *Condition {
	if cat == nil {
		cat = Root
	}
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return &Condition{category: cat, message: message, cause: cause, stack: pcs[:n]}
}

// AsCondition returns the condition carried by err.
//
// A *Condition anywhere in err's chain is returned as is. An error
// implementing [Categorized] is wrapped under its own category; any other
// error is wrapped under [ErrorCategory]. AsCondition(nil) returns nil.
func AsCondition(err error) *Condition {
	return asCondition(err, 4)
}

func asCondition(err error, skip int) *Condition {
	if err == nil {
		return nil
	}
	var c *Condition
	if errors.As(err, &c) {
		return c
	}
	var cz Categorized
	if errors.As(err, &cz) {
		return newCondition(cz.Category(), "", err, skip)
	}
	return newCondition(ErrorCategory, "", err, skip)
}

// Category returns the condition's most specific category.
func (c *Condition) Category() *Category { return c.category }

// Message returns the condition's own message, or the cause's message
// when none was given.
func (c *Condition) Message() string {
	if c.message == "" && c.cause != nil {
		return c.cause.Error()
	}
	return c.message
}

// With sets a payload field and returns c.
func (c *Condition) With(key string, value any) *Condition {
	if c.fields == nil {
		c.fields = make(map[string]any)
	}
	c.fields[key] = value
	return c
}

// Field returns the payload field stored under key.
func (c *Condition) Field(key string) (any, bool) {
	v, ok := c.fields[key]
	return v, ok
}

// Fields returns a copy of the payload.
func (c *Condition) Fields() map[string]any {
	return maps.Clone(c.fields)
}

// Decode copies the payload fields into out, which must be a pointer to a
// struct or map. Field names match case-insensitively or by a
// `mapstructure` tag.
func (c *Condition) Decode(out any) error {
	if err := mapstructure.Decode(c.fields, out); err != nil {
		return fmt.Errorf("cond: decode %s payload: %w", c.category, err)
	}
	return nil
}

// Frames resolves the call stack captured when the condition was created.
// The first frame is the code that created or signalled the condition.
func (c *Condition) Frames() []runtime.Frame {
	if len(c.stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(c.stack)
	out := make([]runtime.Frame, 0, len(c.stack))
	for {
		f, more := frames.Next()
		out = append(out, f)
		if !more {
			return out
		}
	}
}

// Error implements error.
func (c *Condition) Error() string {
	if msg := c.Message(); msg != "" {
		return msg
	}
	return c.category.String()
}

// Unwrap returns the cause, if any.
func (c *Condition) Unwrap() error { return c.cause }

// Is reports whether target is a [Category] this condition belongs to.
func (c *Condition) Is(target error) bool {
	cat, ok := target.(*Category)
	return ok && c.category.Is(cat)
}
