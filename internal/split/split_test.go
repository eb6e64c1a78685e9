package split

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlan(t *testing.T) {
	got, err := Plan("f", 10, 4)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Split{
		{File: "f", Index: 0, Start: 0, Length: 4},
		{File: "f", Index: 1, Start: 4, Length: 4},
		{File: "f", Index: 2, Start: 8, Length: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_EmptyAndInvalid(t *testing.T) {
	got, err := Plan("f", 0, 4)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty file: got %v, %v", got, err)
	}
	if _, err := Plan("f", 10, 0); err != ErrInvalidSize {
		t.Fatalf("want ErrInvalidSize, got %v", err)
	}
}

func TestAt_CoversFile(t *testing.T) {
	got := At("f", 10, 0, 3, 3, 7, 12)
	var covered int64
	for i, s := range got {
		if s.Start != covered {
			t.Fatalf("split %d starts at %d, want %d", i, s.Start, covered)
		}
		if s.Index != i {
			t.Fatalf("split %d has index %d", i, s.Index)
		}
		covered = s.End()
	}
	if covered != 10 || len(got) != 3 {
		t.Fatalf("got %v", got)
	}
}
