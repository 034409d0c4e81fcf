package runtime

import (
	"errors"
	"testing"
)

func TestDeclareShadowsInCurrentFrame(t *testing.T) {
	s := NewScopeStack()
	s.Declare("x", Number(1))
	s.Push()
	s.Declare("x", Number(2))

	v, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if v.(NumberValue).Val != 2 {
		t.Fatalf("expected shadowing binding, got %#v", v)
	}
	if err := s.Pop(); err != nil {
		t.Fatalf("pop failed: %v", err)
	}
	v, _ = s.Lookup("x")
	if v.(NumberValue).Val != 1 {
		t.Fatalf("expected outer binding after pop, got %#v", v)
	}
}

func TestAssignMutatesNearestBinding(t *testing.T) {
	s := NewScopeStack()
	s.Declare("count", Number(1))
	s.Push()
	s.Assign("count", Number(5))
	if err := s.Pop(); err != nil {
		t.Fatalf("pop failed: %v", err)
	}
	v, err := s.Lookup("count")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if v.(NumberValue).Val != 5 {
		t.Fatalf("expected caller binding to be updated, got %#v", v)
	}
}

func TestAssignUnknownCreatesLocal(t *testing.T) {
	s := NewScopeStack()
	s.Push()
	s.Assign("fresh", Text("local"))
	if _, err := s.Lookup("fresh"); err != nil {
		t.Fatalf("expected binding inside frame: %v", err)
	}
	if err := s.Pop(); err != nil {
		t.Fatalf("pop failed: %v", err)
	}
	_, err := s.Lookup("fresh")
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "fresh" {
		t.Fatalf("expected UndefinedVariableError for fresh, got %v", err)
	}
}

func TestLookupSeesCallerFrames(t *testing.T) {
	s := NewScopeStack()
	s.Declare("outer", Bool(true))
	s.Push()
	s.Push()
	v, err := s.Lookup("outer")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !v.(BoolValue).Val {
		t.Fatalf("unexpected value %#v", v)
	}
	if s.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", s.Depth())
	}
}

func TestPopUnderflow(t *testing.T) {
	s := NewScopeStack()
	if err := s.Pop(); !errors.Is(err, ErrScopeUnderflow) {
		t.Fatalf("expected ErrScopeUnderflow, got %v", err)
	}
}

func TestWithFramePopsOnError(t *testing.T) {
	s := NewScopeStack()
	boom := errors.New("boom")
	err := s.WithFrame(func() error {
		s.Declare("tmp", Number(1))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s.Depth() != 0 {
		t.Fatalf("frame leaked: depth %d", s.Depth())
	}
	if _, err := s.Lookup("tmp"); err == nil {
		t.Fatalf("expected tmp to be gone")
	}
}

func TestWithFramePopsOnPanic(t *testing.T) {
	s := NewScopeStack()
	func() {
		defer func() { _ = recover() }()
		_ = s.WithFrame(func() error { panic("adapter exploded") })
	}()
	if s.Depth() != 0 {
		t.Fatalf("frame leaked after panic: depth %d", s.Depth())
	}
}

func TestFunctionTableRedefinitionReplaces(t *testing.T) {
	table := NewFunctionTable()
	table.Define("f", []string{"a"}, nil)
	table.Define("f", []string{"a", "b"}, nil)
	def, ok := table.Lookup("f")
	if !ok || def.Arity() != 2 {
		t.Fatalf("expected replaced definition with arity 2, got %#v", def)
	}
	if table.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", table.Len())
	}
}
