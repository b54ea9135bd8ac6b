package charclass

import (
	"testing"
	"unicode"
)

func TestNewRangeSetCanonicalizes(t *testing.T) {
	tests := []struct {
		name string
		in   []Range
		want []Range
	}{
		{
			name: "overlapping ranges merge",
			in:   []Range{{Lo: 'a', Hi: 'm'}, {Lo: 'g', Hi: 'z'}},
			want: []Range{{Lo: 'a', Hi: 'z'}},
		},
		{
			name: "adjacent ranges merge",
			in:   []Range{{Lo: 'a', Hi: 'c'}, {Lo: 'd', Hi: 'f'}},
			want: []Range{{Lo: 'a', Hi: 'f'}},
		},
		{
			name: "disjoint ranges sort",
			in:   []Range{{Lo: 'x', Hi: 'z'}, {Lo: 'a', Hi: 'c'}},
			want: []Range{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'z'}},
		},
		{
			name: "inverted range dropped",
			in:   []Range{{Lo: 'z', Hi: 'a'}},
			want: nil,
		},
		{
			name: "duplicates collapse",
			in:   []Range{{Lo: '0', Hi: '9'}, {Lo: '0', Hi: '9'}},
			want: []Range{{Lo: '0', Hi: '9'}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRangeSet(tt.in...).Ranges()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRangeSetContains(t *testing.T) {
	set := NewRangeSet(Range{Lo: 'a', Hi: 'z'}, Range{Lo: '0', Hi: '9'})
	for _, ch := range "am z09" {
		if ch == ' ' {
			continue
		}
		if !set.Contains(ch) {
			t.Errorf("Contains(%q) = false, want true", ch)
		}
	}
	for _, ch := range "A! \n" {
		if set.Contains(ch) {
			t.Errorf("Contains(%q) = true, want false", ch)
		}
	}
}

func TestRangeSetOperations(t *testing.T) {
	az := NewRangeSet(Range{Lo: 'a', Hi: 'z'})
	digits := NewRangeSet(Range{Lo: '0', Hi: '9'})
	am := NewRangeSet(Range{Lo: 'a', Hi: 'm'})

	union := az.Union(digits)
	if !union.Contains('q') || !union.Contains('5') || union.Contains('A') {
		t.Errorf("union wrong: %s", union)
	}

	inter := az.Intersect(am)
	if !inter.Equal(am) {
		t.Errorf("Intersect = %s, want %s", inter, am)
	}

	diff := az.Difference(am)
	if diff.Contains('a') || diff.Contains('m') || !diff.Contains('n') || !diff.Contains('z') {
		t.Errorf("difference wrong: %s", diff)
	}

	sym := az.SymmetricDifference(am)
	if !sym.Equal(diff) {
		t.Errorf("SymmetricDifference = %s, want %s", sym, diff)
	}

	neg := az.Negate()
	if neg.Contains('b') || !neg.Contains('A') || !neg.Contains(MaxScalar) {
		t.Errorf("negation wrong")
	}
	if !neg.Negate().Equal(az) {
		t.Errorf("double negation is not the identity")
	}
}

func TestNegateEmptyIsFullDomain(t *testing.T) {
	full := RangeSet{}.Negate()
	if !full.Contains(0) || !full.Contains('x') || !full.Contains(MaxScalar) {
		t.Errorf("complement of empty set misses scalars")
	}
	ranges := full.Ranges()
	if len(ranges) != 1 || ranges[0].Lo != 0 || ranges[0].Hi != MaxScalar {
		t.Errorf("complement of empty set = %v", ranges)
	}
}

func TestFromTableMatchesUnicode(t *testing.T) {
	ws := FromTable(unicode.White_Space)
	for _, ch := range []rune{' ', '\t', '\n', '\r', '\f', '\v', 0x85, 0xA0, 0x2028} {
		if !ws.Contains(ch) {
			t.Errorf("whitespace set misses %U", ch)
		}
	}
	for _, ch := range []rune{'a', '0', '_'} {
		if ws.Contains(ch) {
			t.Errorf("whitespace set wrongly contains %q", ch)
		}
	}
	// The range set and the host property must agree everywhere in the BMP.
	for ch := rune(0); ch < 0x3000; ch++ {
		if ws.Contains(ch) != unicode.IsSpace(ch) {
			t.Fatalf("Contains(%U) = %v, IsSpace = %v", ch, ws.Contains(ch), unicode.IsSpace(ch))
		}
	}
}

func TestPredicateEqualsClassMembership(t *testing.T) {
	// predicate(intern(X))(c) must equal X.Contains(c) for all c.
	reg := NewRegistry()
	set := FromTable(unicode.White_Space).Difference(NewRangeSet(
		Range{Lo: '\n', Hi: '\n'},
		Range{Lo: '\r', Hi: '\r'},
	))
	pred := reg.Predicate(reg.Intern(set))
	for ch := rune(0); ch < 0x3000; ch++ {
		want := unicode.IsSpace(ch) && ch != '\r' && ch != '\n'
		if pred(ch) != want {
			t.Fatalf("predicate(%U) = %v, want %v", ch, pred(ch), want)
		}
	}
}

func TestRegistryInternIdempotent(t *testing.T) {
	reg := NewRegistry()
	a := reg.Intern(NewRangeSet(Range{Lo: 'a', Hi: 'z'}))
	b := reg.Intern(NewRangeSet(Range{Lo: '0', Hi: '9'}))
	if a == b {
		t.Fatalf("distinct classes share ID %v", a)
	}
	// Differently expressed but canonically equal sets intern to one ID.
	again := reg.Intern(NewRangeSet(Range{Lo: 'a', Hi: 'm'}, Range{Lo: 'n', Hi: 'z'}))
	if again != a {
		t.Errorf("Intern of equal canonical set = %v, want %v", again, a)
	}
	if reg.Count() != 2 {
		t.Errorf("Count = %d, want 2", reg.Count())
	}
}

func TestRegistryPredicateVector(t *testing.T) {
	reg := NewRegistry()
	reg.Intern(Single('x'))
	reg.Intern(NewRangeSet(Range{Lo: '0', Hi: '9'}))
	preds := reg.Predicates()
	if len(preds) != 2 {
		t.Fatalf("predicate vector has %d entries, want 2", len(preds))
	}
	if !preds[0]('x') || preds[0]('y') {
		t.Errorf("predicate 0 wrong")
	}
	if !preds[1]('7') || preds[1]('x') {
		t.Errorf("predicate 1 wrong")
	}
	if !reg.Matches('5', ID(1)) || reg.Matches('5', ID(0)) {
		t.Errorf("Matches wrong")
	}
}
