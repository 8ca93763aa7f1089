package httprange_test

import (
	"testing"

	"github.com/sovietmap/tileserve.git/internal/httprange"
)

func Test_Parse(t *testing.T) {
	type testCase struct {
		name  string
		raw   string
		state httprange.State
		specs []httprange.Spec
	}

	cases := []testCase{
		{"absent", "", httprange.Absent, nil},
		{"absolute", "bytes=100-199", httprange.Present,
			[]httprange.Spec{{Anchor: httprange.AnchorAbsolute, Start: 100, End: 199}}},
		{"to end", "bytes=500-", httprange.Present,
			[]httprange.Spec{{Anchor: httprange.AnchorToEnd, Start: 500}}},
		{"suffix", "bytes=-250", httprange.Present,
			[]httprange.Spec{{Anchor: httprange.AnchorFromEnd, Suffix: 250}}},
		{"zero start", "bytes=0-0", httprange.Present,
			[]httprange.Spec{{Anchor: httprange.AnchorAbsolute, Start: 0, End: 0}}},
		{"multiple specs kept in order", "bytes=0-4, 10-14", httprange.Present,
			[]httprange.Spec{
				{Anchor: httprange.AnchorAbsolute, Start: 0, End: 4},
				{Anchor: httprange.AnchorAbsolute, Start: 10, End: 14},
			}},
		{"spaces around spec", "bytes= 5-9 ", httprange.Present,
			[]httprange.Spec{{Anchor: httprange.AnchorAbsolute, Start: 5, End: 9}}},
		{"wrong unit", "items=0-10", httprange.Malformed, nil},
		{"missing unit", "0-10", httprange.Malformed, nil},
		{"no dash", "bytes=100", httprange.Malformed, nil},
		{"non numeric start", "bytes=abc-10", httprange.Malformed, nil},
		{"non numeric end", "bytes=10-xyz", httprange.Malformed, nil},
		{"inverted", "bytes=20-10", httprange.Malformed, nil},
		{"bare dash", "bytes=-", httprange.Malformed, nil},
		{"empty list", "bytes=", httprange.Malformed, nil},
		{"only commas", "bytes=,,", httprange.Malformed, nil},
		{"one bad spec poisons the header", "bytes=0-4, nope", httprange.Malformed, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			state, specs := httprange.Parse(c.raw)
			if state != c.state {
				t.Fatalf("state: got %v, want %v", state, c.state)
			}
			if len(specs) != len(c.specs) {
				t.Fatalf("specs: got %d, want %d", len(specs), len(c.specs))
			}
			for i := range specs {
				if specs[i] != c.specs[i] {
					t.Errorf("spec %d: got %+v, want %+v", i, specs[i], c.specs[i])
				}
			}
		})
	}
}

func Test_Resolve(t *testing.T) {
	type testCase struct {
		name     string
		spec     httprange.Spec
		size     int64
		ok       bool
		resolved httprange.Resolved
	}

	cases := []testCase{
		{"interior", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 100, End: 199}, 1000,
			true, httprange.Resolved{Start: 100, End: 199}},
		{"end clamped", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 950, End: 1200}, 1000,
			true, httprange.Resolved{Start: 950, End: 999}},
		{"start past end", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 2000, End: 3000}, 1000,
			false, httprange.Resolved{}},
		{"start at size", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 1000, End: 1000}, 1000,
			false, httprange.Resolved{}},
		{"last byte", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 999, End: 999}, 1000,
			true, httprange.Resolved{Start: 999, End: 999}},
		{"open to end", httprange.Spec{Anchor: httprange.AnchorToEnd, Start: 750}, 1000,
			true, httprange.Resolved{Start: 750, End: 999}},
		{"open past end", httprange.Spec{Anchor: httprange.AnchorToEnd, Start: 1000}, 1000,
			false, httprange.Resolved{}},
		{"suffix", httprange.Spec{Anchor: httprange.AnchorFromEnd, Suffix: 100}, 1000,
			true, httprange.Resolved{Start: 900, End: 999}},
		{"suffix longer than resource", httprange.Spec{Anchor: httprange.AnchorFromEnd, Suffix: 5000}, 1000,
			true, httprange.Resolved{Start: 0, End: 999}},
		{"zero suffix", httprange.Spec{Anchor: httprange.AnchorFromEnd, Suffix: 0}, 1000,
			false, httprange.Resolved{}},
		{"suffix of empty resource", httprange.Spec{Anchor: httprange.AnchorFromEnd, Suffix: 10}, 0,
			false, httprange.Resolved{}},
		{"anything against empty resource", httprange.Spec{Anchor: httprange.AnchorAbsolute, Start: 0, End: 0}, 0,
			false, httprange.Resolved{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resolved, ok := c.spec.Resolve(c.size)
			if ok != c.ok {
				t.Fatalf("ok: got %v, want %v", ok, c.ok)
			}
			if resolved != c.resolved {
				t.Errorf("resolved: got %+v, want %+v", resolved, c.resolved)
			}
		})
	}
}

func Test_ResolvedLength(t *testing.T) {
	r := httprange.Resolved{Start: 100, End: 199}
	if r.Length() != 100 {
		t.Fatalf("length: got %d, want 100", r.Length())
	}
	if got := r.ContentRange(1000); got != "bytes 100-199/1000" {
		t.Fatalf("content range: got %q", got)
	}
	if got := httprange.ContentRangeUnsatisfiable(1000); got != "bytes */1000" {
		t.Fatalf("unsatisfiable content range: got %q", got)
	}
}
