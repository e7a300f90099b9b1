// Package buffer provides read-only views over byte slices that record
// whether the bytes are borrowed from the caller or owned by the view.
//
// A borrowed view aliases caller memory and is valid only while the
// producing call is on the stack. Any work that crosses a goroutine hand-off
// must hold an owned view.
package buffer

import (
	"github.com/hupe1980/gxhash/resource"
)

// Mode records who owns the bytes behind a View.
type Mode uint8

const (
	// Borrowed views alias caller memory.
	Borrowed Mode = iota
	// Owned views hold an independent copy.
	Owned
)

func (m Mode) String() string {
	switch m {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}

// View is a read-only byte view.
type View struct {
	data []byte
	mode Mode
}

// Borrow returns a zero-copy view of b. The caller must not mutate b while
// the view is in use.
func Borrow(b []byte) View {
	return View{data: b, mode: Borrowed}
}

// Own returns a view over a private copy of b.
func Own(b []byte) View {
	return View{data: clone(b), mode: Owned}
}

// Bytes returns the viewed bytes. Callers must treat them as read-only.
func (v View) Bytes() []byte { return v.data }

// Len returns the number of viewed bytes.
func (v View) Len() int { return len(v.data) }

// Mode returns the ownership mode.
func (v View) Mode() Mode { return v.mode }

// Borrowed reports whether the view aliases caller memory.
func (v View) Borrowed() bool { return v.mode == Borrowed }

// Owned returns v if it already owns its bytes, else an owned copy.
func (v View) Owned() View {
	if v.mode == Owned {
		return v
	}
	return Own(v.data)
}

// Detach returns an owned copy whose size is charged to rc's memory budget.
// The release func returns the bytes to the budget and is safe to call more
// than once. A nil rc tracks nothing.
func (v View) Detach(rc *resource.Controller) (View, func(), error) {
	release, err := rc.Reserve(int64(len(v.data)))
	if err != nil {
		return View{}, nil, err
	}
	return View{data: clone(v.data), mode: Owned}, release, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
