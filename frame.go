// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Registry frames and stacks.
// A frame is never mutated after it is pushed: push merges the new entries
// onto a copy of the current top, so pop restores exactly the previous
// lookup set.

// entry is a registered handler or restart.
// K is *Category for handlers and string for restarts.
type entry[K comparable, F any] struct {
	key         K
	description string
	action      F

	// origin is the stack index of the frame that registered the entry.
	origin int
}

// frame is an immutable key → entry mapping with insertion order.
type frame[K comparable, F any] struct {
	index map[K]*entry[K, F]
	order []*entry[K, F]
}

func (f *frame[K, F]) len() int { return len(f.order) }

func (f *frame[K, F]) lookup(key K) *entry[K, F] { return f.index[key] }

// merge returns a new frame holding f's entries overridden by entries.
// An overridden key keeps its original position in the order.
func (f *frame[K, F]) merge(entries []*entry[K, F]) *frame[K, F] {
	next := &frame[K, F]{
		index: make(map[K]*entry[K, F], len(f.order)+len(entries)),
		order: make([]*entry[K, F], len(f.order), len(f.order)+len(entries)),
	}
	copy(next.order, f.order)
	for _, e := range next.order {
		next.index[e.key] = e
	}
	for _, e := range entries {
		if _, ok := next.index[e.key]; ok {
			for i, old := range next.order {
				if old.key == e.key {
					next.order[i] = e
					break
				}
			}
		} else {
			next.order = append(next.order, e)
		}
		next.index[e.key] = e
	}
	return next
}

// stack is an ordered sequence of frames, never empty.
// The bottom frame is the empty default frame.
type stack[K comparable, F any] struct {
	frames []*frame[K, F]
}

func newStack[K comparable, F any]() stack[K, F] {
	return stack[K, F]{frames: []*frame[K, F]{{index: map[K]*entry[K, F]{}}}}
}

func (s *stack[K, F]) depth() int { return len(s.frames) }

func (s *stack[K, F]) top() *frame[K, F] { return s.frames[len(s.frames)-1] }

func (s *stack[K, F]) at(i int) *frame[K, F] { return s.frames[i] }

// push merges entries onto the top frame and pushes the result.
// Each entry's origin is set to the index of the new frame.
func (s *stack[K, F]) push(entries []*entry[K, F]) {
	origin := len(s.frames)
	for _, e := range entries {
		e.origin = origin
	}
	s.frames = append(s.frames, s.top().merge(entries))
}

// pop removes the top frame. Popping the default frame is a contract
// violation.
func (s *stack[K, F]) pop() {
	n := len(s.frames)
	if n <= 1 {
		panic("cond: pop of default frame")
	}
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
}
