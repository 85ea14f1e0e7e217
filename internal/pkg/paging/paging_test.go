package paging

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{13, 6, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestClampStaysInRange(t *testing.T) {
	if got := Clamp(0, 3); got != 1 {
		t.Fatalf("page before 1 should clamp to 1, got %d", got)
	}
	if got := Clamp(-5, 3); got != 1 {
		t.Fatalf("negative page should clamp to 1, got %d", got)
	}
	if got := Clamp(9, 3); got != 3 {
		t.Fatalf("page past the end should clamp to last page, got %d", got)
	}
	if got := Clamp(2, 3); got != 2 {
		t.Fatalf("in-range page should be unchanged, got %d", got)
	}
	if got := Clamp(4, 0); got != 1 {
		t.Fatalf("empty set should pin to page 1, got %d", got)
	}
}

func TestSliceWindows(t *testing.T) {
	// 13 items, page size 6: pages are 0..6, 6..12, 12..13.
	start, end := Slice(1, 6, 13)
	if start != 0 || end != 6 {
		t.Fatalf("page 1 window = [%d, %d), want [0, 6)", start, end)
	}
	start, end = Slice(3, 6, 13)
	if start != 12 || end != 13 {
		t.Fatalf("last page window = [%d, %d), want [12, 13)", start, end)
	}
	// Out-of-range page re-clamps to the last page instead of going empty.
	start, end = Slice(99, 6, 13)
	if start != 12 || end != 13 {
		t.Fatalf("clamped page window = [%d, %d), want [12, 13)", start, end)
	}
	start, end = Slice(1, 6, 0)
	if start != 0 || end != 0 {
		t.Fatalf("empty set window = [%d, %d), want [0, 0)", start, end)
	}
}
