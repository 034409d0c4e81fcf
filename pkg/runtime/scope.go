package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrScopeUnderflow signals a pop without a matching push.
var ErrScopeUnderflow = errors.New("internal error: scope pop without matching push")

// UndefinedVariableError is returned by Lookup when no frame binds the name.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}

// Frame is one level of variable visibility.
type Frame map[string]Value

// ScopeStack keeps the frame of the code currently executing apart from the
// frames of the callers that are suspended beneath it. Lookups and
// assignments search the current frame first and then the callers from the
// most recent to the oldest.
type ScopeStack struct {
	current Frame
	history []Frame
}

// NewScopeStack returns a stack holding a single empty frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{current: make(Frame)}
}

// Depth is the number of suspended caller frames.
func (s *ScopeStack) Depth() int {
	return len(s.history)
}

// Declare binds name in the current frame, shadowing outer bindings.
func (s *ScopeStack) Declare(name string, value Value) {
	s.current[name] = value
}

// Assign updates the nearest existing binding. A name that no frame knows is
// created in the current frame, not in the outermost one.
func (s *ScopeStack) Assign(name string, value Value) {
	if frame := s.find(name); frame != nil {
		frame[name] = value
		return
	}
	s.current[name] = value
}

// Lookup resolves name using the same search order as Assign.
func (s *ScopeStack) Lookup(name string) (Value, error) {
	if frame := s.find(name); frame != nil {
		return frame[name], nil
	}
	return nil, &UndefinedVariableError{Name: name}
}

func (s *ScopeStack) find(name string) Frame {
	if _, ok := s.current[name]; ok {
		return s.current
	}
	for idx := len(s.history) - 1; idx >= 0; idx-- {
		if _, ok := s.history[idx][name]; ok {
			return s.history[idx]
		}
	}
	return nil
}

// Push suspends the current frame and starts an empty one.
func (s *ScopeStack) Push() {
	s.history = append(s.history, s.current)
	s.current = make(Frame)
}

// Pop discards the current frame and resumes the most recently suspended one.
func (s *ScopeStack) Pop() error {
	if len(s.history) == 0 {
		return ErrScopeUnderflow
	}
	last := len(s.history) - 1
	s.current = s.history[last]
	s.history[last] = nil
	s.history = s.history[:last]
	return nil
}

// WithFrame runs fn inside a fresh frame. The frame is popped on every exit
// path, including errors and panics raised by fn.
func (s *ScopeStack) WithFrame(fn func() error) (err error) {
	s.Push()
	defer func() {
		if popErr := s.Pop(); popErr != nil && err == nil {
			err = popErr
		}
	}()
	return fn()
}

// Keys returns the names bound in the current frame in sorted order.
func (s *ScopeStack) Keys() []string {
	keys := make([]string, 0, len(s.current))
	for k := range s.current {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current frame.
func (s *ScopeStack) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.current))
	for k, v := range s.current {
		out[k] = v
	}
	return out
}
