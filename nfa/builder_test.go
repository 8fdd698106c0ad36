package nfa

import (
	"errors"
	"testing"

	"github.com/Dophin2009/regexp2/syntax"
)

func TestBuilderBuild(t *testing.T) {
	// a|b built by hand
	b := NewBuilder()
	match := b.AddMatch()
	join := b.AddEpsilon(match)
	sa := b.AddRune('a', join)
	sb := b.AddRune('b', join)
	split := b.AddSplit(sa, sb)
	b.SetStart(split)

	n, err := b.Build(WithPattern("a|b"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if n.States() != 5 {
		t.Errorf("States() = %d, want 5", n.States())
	}
	if n.Start() != split {
		t.Errorf("Start() = %d, want %d", n.Start(), split)
	}
	if got := n.MatchStates(); len(got) != 1 || got[0] != match {
		t.Errorf("MatchStates() = %v, want [%d]", got, match)
	}
	if n.Pattern() != "a|b" {
		t.Errorf("Pattern() = %q", n.Pattern())
	}
	if !n.IsMatch(match) || n.IsMatch(split) || n.IsMatch(InvalidState) {
		t.Error("IsMatch reports wrong states")
	}
	if n.State(InvalidState) != nil || n.State(99) != nil {
		t.Error("State() should return nil for invalid ids")
	}
	if r, next := n.State(sa).Rune(); r != 'a' || next != join {
		t.Errorf("Rune() = (%q, %d), want ('a', %d)", r, next, join)
	}
	if l, r := n.State(split).Split(); l != sa || r != sb {
		t.Errorf("Split() = (%d, %d)", l, r)
	}
	if n.State(join).Epsilon() != match {
		t.Errorf("Epsilon() = %d, want %d", n.State(join).Epsilon(), match)
	}
}

func TestBuilderValidate(t *testing.T) {
	t.Run("no start", func(t *testing.T) {
		b := NewBuilder()
		b.AddMatch()
		if _, err := b.Build(); err == nil {
			t.Error("expected error for missing start state")
		}
	})

	t.Run("dangling target", func(t *testing.T) {
		b := NewBuilder()
		s := b.AddEpsilon(InvalidState)
		b.SetStart(s)
		_, err := b.Build()
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("Build() error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		b := NewBuilder()
		m := b.AddMatch()
		b.AddRune('x', m)
		b.SetStart(m)
		_, err := b.Build()
		if !errors.Is(err, ErrUnreachableState) {
			t.Errorf("Build() error = %v, want ErrUnreachableState", err)
		}
		var berr *BuildError
		if !errors.As(err, &berr) || berr.StateID != 1 {
			t.Errorf("BuildError = %+v, want state 1", berr)
		}
	})
}

func TestBuilderPatch(t *testing.T) {
	b := NewBuilder()
	m := b.AddMatch()
	e := b.AddEpsilon(InvalidState)
	s := b.AddSplit(InvalidState, InvalidState)

	if err := b.Patch(e, m); err != nil {
		t.Errorf("Patch(epsilon) error = %v", err)
	}
	if err := b.Patch(m, e); err == nil {
		t.Error("Patch(match) should fail")
	}
	if err := b.Patch(100, m); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Patch(out of bounds) error = %v", err)
	}
	if err := b.PatchSplit(s, e, m); err != nil {
		t.Errorf("PatchSplit error = %v", err)
	}
	if err := b.PatchSplit(e, m, m); err == nil {
		t.Error("PatchSplit on epsilon should fail")
	}
}

func TestStateKindString(t *testing.T) {
	tests := []struct {
		kind StateKind
		want string
	}{
		{StateMatch, "Match"},
		{StateRune, "Rune"},
		{StateClass, "Class"},
		{StateSplit, "Split"},
		{StateEpsilon, "Epsilon"},
		{StateKind(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("StateKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStateStep(t *testing.T) {
	b := NewBuilder()
	m := b.AddMatch()
	digits, _ := syntax.Shorthand('d')
	c := b.AddClass(digits, m)
	r := b.AddRune('x', c)
	b.SetStart(r)
	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if n.State(r).Step('x') != c || n.State(r).Step('y') != InvalidState {
		t.Error("rune state steps incorrectly")
	}
	if n.State(c).Step('7') != m || n.State(c).Step(0xFF14) != m || n.State(c).Step('a') != InvalidState {
		t.Error("class state steps incorrectly")
	}
	if n.State(m).Step('x') != InvalidState {
		t.Error("match state must not consume input")
	}
}
