// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

type handlerEntry = entry[*Category, HandlerFunc]

// findHandler returns the handler in f registered for the category closest
// to target in target's ancestor chain.
//
// An exact match wins outright. Otherwise the entry with the smallest
// distance wins; equal distances go to the earliest insertion. Entries for
// which allow returns false are invisible. A nil allow admits every entry.
func findHandler(f *frame[*Category, HandlerFunc], target *Category, allow func(*handlerEntry) bool) *handlerEntry {
	if e := f.lookup(target); e != nil && (allow == nil || allow(e)) {
		return e
	}
	var best *handlerEntry
	bestDist := 0
	for _, e := range f.order {
		if allow != nil && !allow(e) {
			continue
		}
		d, ok := target.Distance(e.key)
		if !ok {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
