// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"errors"
	"fmt"
	"strings"

	"code.hybscloud.com/cond"
)

var MalformedEntry = cond.NewCategory("malformed-entry", cond.ErrorCategory)

type logEntry struct {
	Level string
	Text  string
}

// parseEntry offers two ways out of a malformed line: use a replacement
// entry, or parse a corrected line instead.
func parseEntry(env *cond.Env, line string) (any, error) {
	s := env.Restartable()
	s.Restart("use-value", "Use a value instead.", func(args ...any) (any, error) {
		s.Leave(args...)
		return nil, nil
	})
	s.Restart("reparse", "Parse another line.", func(args ...any) (any, error) {
		s.Again(args...)
		return nil, nil
	})
	return s.Run(func(args ...any) (any, error) {
		if len(args) == 1 {
			line = args[0].(string)
		}
		level, text, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, env.Signal(cond.Newf(MalformedEntry, "malformed entry %q", line).With("line", line))
		}
		return logEntry{Level: level, Text: text}, nil
	})
}

func parseLog(env *cond.Env, lines []string) ([]logEntry, error) {
	var out []logEntry
	for _, line := range lines {
		v, err := parseEntry(env, line)
		if err != nil {
			return nil, err
		}
		if e, ok := v.(logEntry); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// The low-level parser establishes restarts; the caller decides which
// one applies without unwinding the parse loop.
func Example() {
	env := cond.NewEnv()
	lines := []string{"info: started", "garbage", "warn: disk full", "broken line"}

	h := env.Handling().Handle(MalformedEntry, "Skip or repair entries.", func(c *cond.Condition) error {
		line, _ := c.Field("line")
		if line == "garbage" {
			_, err := env.InvokeRestart("use-value")
			return err
		}
		_, err := env.InvokeRestart("reparse", "error: "+line.(string))
		return err
	})
	entries, err := h.Run(func(...any) (any, error) {
		return parseLog(env, lines)
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range entries.([]logEntry) {
		fmt.Printf("%s %s\n", e.Level, e.Text)
	}
	// Output:
	// info started
	// warn disk full
	// error broken line
}

func ExampleEnv_Signal_unhandled() {
	env := cond.NewEnv()
	err := env.Signalf(MalformedEntry, "nobody listens")
	fmt.Println(err)
	fmt.Println(errors.Is(err, cond.ErrorCategory))
	// Output:
	// nobody listens
	// true
}

func ExampleEnv_Resignal() {
	env := cond.NewEnv()
	outer := cond.Handler{Category: cond.Root, Func: func(c *cond.Condition) error {
		fmt.Println("outer saw:", c)
		return nil
	}}
	inner := cond.Handler{Category: MalformedEntry, Func: func(c *cond.Condition) error {
		fmt.Println("inner saw:", c)
		return env.Resignal()
	}}
	err := env.WithHandlers([]cond.Handler{outer}, func() error {
		return env.WithHandlers([]cond.Handler{inner}, func() error {
			return env.Signalf(MalformedEntry, "bad line")
		})
	})
	fmt.Println("err:", err)
	// Output:
	// inner saw: bad line
	// outer saw: bad line
	// err: <nil>
}

func ExampleCondition_Decode() {
	c := cond.New(MalformedEntry, "bad line").With("line", "garbage").With("offset", 7)
	var payload struct {
		Line   string
		Offset int
	}
	if err := c.Decode(&payload); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s at %d\n", payload.Line, payload.Offset)
	// Output: garbage at 7
}

func ExampleSection_Again() {
	env := cond.NewEnv()
	attempts := 0
	s := env.Restartable()
	v, _ := s.Run(func(args ...any) (any, error) {
		attempts++
		if attempts < 3 {
			s.Again(attempts)
		}
		return fmt.Sprintf("done after %d attempts, last arg %v", attempts, args[0]), nil
	})
	fmt.Println(v)
	// Output: done after 3 attempts, last arg 2
}
