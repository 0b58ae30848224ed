// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/cond"
)

// MissingKey is signalled when a key is absent from the table.
var MissingKey = cond.NewCategory("missing-key", cond.ErrorCategory)

// Table maps keys to values.
type Table map[string]string

func parseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

func loadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return parseTable(data)
}

func (t Table) String() string {
	out, err := yaml.Marshal(map[string]string(t))
	if err != nil {
		return fmt.Sprint(map[string]string(t))
	}
	return strings.TrimRight(string(out), "\n")
}

// fetch looks key up in table. A missing key is signalled as a MissingKey
// condition with restarts to give up with fallback, retry, or retry with
// a key or table read from in.
func fetch(env *cond.Env, in cond.Prompter, table Table, key, fallback string) (string, error) {
	s := env.Restartable()
	s.Restart("continue", "Return not having found the value.", func(...any) (any, error) {
		s.Leave(fallback)
		return nil, nil
	})
	s.Restart("try-again", "Try getting the key from the table again.", func(...any) (any, error) {
		s.Again()
		return nil, nil
	})
	s.Restart("use-new-key", "Use a new key.", func(...any) (any, error) {
		line, err := in.Prompt("Enter a new key: ")
		if err != nil {
			return nil, err
		}
		key = strings.TrimSpace(line)
		s.Again()
		return nil, nil
	})
	s.Restart("use-new-table", "Use a new table.", func(...any) (any, error) {
		line, err := in.Prompt("Enter a new table: ")
		if err != nil {
			return nil, err
		}
		t, err := parseTable([]byte(line))
		if err != nil {
			return nil, err
		}
		table = t
		s.Again()
		return nil, nil
	})

	v, err := s.Run(func(...any) (any, error) {
		if v, ok := table[key]; ok {
			return v, nil
		}
		c := cond.Newf(MissingKey, "error getting %q from:\n%s", key, table).With("key", key)
		return fallback, env.Signal(c)
	})
	if err != nil {
		return "", err
	}
	str, _ := v.(string)
	return str, nil
}
