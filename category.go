// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "strings"

// Category is a node in the single-rooted condition hierarchy.
// Every category except [Root] has exactly one parent, so the ancestor
// chain of a category is deterministic and ends at Root.
//
// *Category implements error so that errors.Is can test a signalled
// error against a category:
//
//	if errors.Is(err, BirdCategory) { ... } // true for SparrowCategory too
type Category struct {
	name   string
	parent *Category
	depth  int
}

// Root is the category every other category descends from.
// A handler registered for Root matches any condition.
var Root = &Category{name: "condition"}

// ErrorCategory classifies plain Go errors converted by [AsCondition].
var ErrorCategory = NewCategory("error", Root)

// RuntimeCategory classifies runtime panics recovered by [Env.Guard].
var RuntimeCategory = NewCategory("runtime", ErrorCategory)

// NewCategory creates a category below parent.
// A nil parent places the category directly below [Root].
func NewCategory(name string, parent *Category) *Category {
	if parent == nil {
		parent = Root
	}
	return &Category{name: name, parent: parent, depth: parent.depth + 1}
}

// Name returns the category's own name.
func (c *Category) Name() string { return c.name }

// Parent returns the direct parent, or nil for [Root].
func (c *Category) Parent() *Category { return c.parent }

// Ancestors returns the chain from c up to and including [Root].
// The first element is c itself.
func (c *Category) Ancestors() []*Category {
	chain := make([]*Category, 0, c.depth+1)
	for p := c; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	return chain
}

// Distance returns the number of hops from c up to ancestor.
// Distance(c) is 0. The boolean is false if ancestor is not in c's chain.
func (c *Category) Distance(ancestor *Category) (int, bool) {
	if c == nil || ancestor == nil || ancestor.depth > c.depth {
		return 0, false
	}
	p := c
	for range c.depth - ancestor.depth {
		p = p.parent
	}
	if p != ancestor {
		return 0, false
	}
	return c.depth - ancestor.depth, true
}

// Is reports whether c is ancestor or descends from it.
func (c *Category) Is(ancestor *Category) bool {
	_, ok := c.Distance(ancestor)
	return ok
}

// String returns the slash-separated path from [Root], e.g.
// "condition/animal/bird".
func (c *Category) String() string {
	chain := c.Ancestors()
	names := make([]string, len(chain))
	for i, p := range chain {
		names[len(chain)-1-i] = p.name
	}
	return strings.Join(names, "/")
}

// Error implements error so a category can be an errors.Is target.
func (c *Category) Error() string { return c.String() }
