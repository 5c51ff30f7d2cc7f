package lockreq_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alaric/lock-order/lockreq"
)

func TestCutDirective(t *testing.T) {
	tests := []struct {
		comment string
		args    string
		ok      bool
	}{
		{"//lock:acquire mut s.conns", " mut s.conns", true},
		{"//lock:acquire", "", true},
		{"//lock:acquire\ts.conns", "\ts.conns", true},
		{"//lock:acquired by caller", "", false},
		{"// lock:acquire s.conns", "", false},
		{"//go:build ignore", "", false},
	}
	for _, tt := range tests {
		args, ok := lockreq.CutDirective(tt.comment)
		if args != tt.args || ok != tt.ok {
			t.Errorf("CutDirective(%q) = %q, %v, want %q, %v", tt.comment, args, ok, tt.args, tt.ok)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args string
		want lockreq.List
	}{
		{"single", " only", lockreq.List{
			{Path: "only", Offset: 1},
		}},
		{"dotted", " s.locks.connections", lockreq.List{
			{Path: "s.locks.connections", Offset: 1},
		}},
		{"mut", " mut s.conns", lockreq.List{
			{Path: "s.conns", Mutable: true, Offset: 5},
		}},
		{"caller order kept", " mut lockB, lockA", lockreq.List{
			{Path: "lockB", Mutable: true, Offset: 5},
			{Path: "lockA", Offset: 12},
		}},
		{"mixed paths", " s.a.inner, mut b", lockreq.List{
			{Path: "s.a.inner", Offset: 1},
			{Path: "b", Mutable: true, Offset: 16},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lockreq.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []lockreq.SyntaxError
	}{
		{"empty", "", []lockreq.SyntaxError{
			{Offset: 0, Msg: "at least one lock is required"},
		}},
		{"blank", "   ", []lockreq.SyntaxError{
			{Offset: 0, Msg: "at least one lock is required"},
		}},
		{"bare mut", " mut", []lockreq.SyntaxError{
			{Offset: 1, Msg: "missing lock path after mut"},
		}},
		{"trailing comma", " a.b,", []lockreq.SyntaxError{
			{Offset: 5, Msg: "empty lock entry"},
		}},
		{"double comma", " a,, b", []lockreq.SyntaxError{
			{Offset: 3, Msg: "empty lock entry"},
		}},
		{"bad segment", " s.1x", []lockreq.SyntaxError{
			{Offset: 1, Msg: `malformed lock path "s.1x"`},
		}},
		{"dangling dot", " a.b.", []lockreq.SyntaxError{
			{Offset: 1, Msg: `malformed lock path "a.b."`},
		}},
		{"junk after path", " a b", []lockreq.SyntaxError{
			{Offset: 3, Msg: `unexpected "b" after lock path`},
		}},
		{"every entry reported", " x., mut", []lockreq.SyntaxError{
			{Offset: 1, Msg: `malformed lock path "x."`},
			{Offset: 5, Msg: "missing lock path after mut"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := lockreq.Parse(tt.args)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.args, list)
			}
			var got []lockreq.SyntaxError
			for _, se := range lockreq.SyntaxErrors(err) {
				got = append(got, *se)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) errors mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func binds(l lockreq.List) []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.Bind()
	}
	return out
}

func mustParse(t *testing.T, args string) lockreq.List {
	t.Helper()
	l, err := lockreq.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	return l
}

func TestCanonicalOrder(t *testing.T) {
	// Any caller order over the same bind names yields the same
	// acquisition order.
	perms := []string{
		"mut lockB, lockC, mut lockA",
		"lockC, mut lockA, mut lockB",
		"mut lockA, mut lockB, lockC",
	}
	want := []string{"lockA", "lockB", "lockC"}
	for _, args := range perms {
		got := binds(mustParse(t, args).Canonical())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Canonical(%q) mismatch (-want +got):\n%s", args, diff)
		}
	}
}

func TestCanonicalDependsOnBindOnly(t *testing.T) {
	a := binds(mustParse(t, "z.inner.lockA, q.lockB").Canonical())
	b := binds(mustParse(t, "lockB, lockA").Canonical())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("canonical order differs for identical bind names:\n%s", diff)
	}
}

func TestCanonicalIsPermutation(t *testing.T) {
	l := mustParse(t, "mut lockB, lockA")
	c := l.Canonical()
	if len(c) != len(l) {
		t.Fatalf("Canonical changed length: %d != %d", len(c), len(l))
	}
	seen := map[lockreq.Path]int{}
	for _, r := range l {
		seen[r.Path]++
	}
	for _, r := range c {
		seen[r.Path]--
	}
	for p, n := range seen {
		if n != 0 {
			t.Errorf("Canonical is not a permutation: %q off by %d", p, n)
		}
	}
	// the caller-ordered list is untouched
	if diff := cmp.Diff([]string{"lockB", "lockA"}, binds(l)); diff != "" {
		t.Errorf("caller order mutated (-want +got):\n%s", diff)
	}
}

func TestCanonicalStableOnEqualBinds(t *testing.T) {
	l := mustParse(t, "x.shared, y.shared")
	got := l.Canonical()
	want := lockreq.List{
		{Path: "x.shared", Offset: 0},
		{Path: "y.shared", Offset: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("equal binds reordered (-want +got):\n%s", diff)
	}
}
