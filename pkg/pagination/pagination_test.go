package pagination

import (
	"math"
	"strconv"
	"testing"
)

func TestPageOffsets(t *testing.T) {
	cases := []struct {
		number int
		offset int
	}{
		{number: 1, offset: 0},
		{number: 2, offset: 12},
		{number: 5, offset: 48},
		{number: 0, offset: 0},
		{number: -3, offset: 0},
		{number: MaxPage, offset: (MaxPage - 1) * PageSize},
		{number: math.MaxInt, offset: (MaxPage - 1) * PageSize},
		{number: math.MinInt, offset: 0},
	}
	for _, tc := range cases {
		page := NewPage(tc.number)
		if page.Offset() != tc.offset {
			t.Fatalf("page %d expected offset %d, got %d", tc.number, tc.offset, page.Offset())
		}
		if page.Limit() != PageSize {
			t.Fatalf("expected limit %d, got %d", PageSize, page.Limit())
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"3":   3,
		" 4 ": 4,
		"0":   1,
		"-2":  1,
		"two": 1,
		"2.5": 1,
	}
	for raw, want := range cases {
		if got := ParsePage(raw); got != want {
			t.Fatalf("ParsePage(%q) expected %d, got %d", raw, want, got)
		}
	}
}

func TestNextPage(t *testing.T) {
	next := NewPage(1).Next()
	if next.Number != 2 || next.Offset() != 12 {
		t.Fatalf("unexpected next page %+v", next)
	}
	if (Page{}).Limit() != PageSize {
		t.Fatal("zero page should fall back to PageSize")
	}
}

func TestLastPageHasNoSuccessor(t *testing.T) {
	last := NewPage(MaxPage)
	if !last.IsLast() {
		t.Fatal("expected MaxPage to be the last page")
	}
	if next := last.Next(); next.Number != MaxPage {
		t.Fatalf("expected Next to stay on %d, got %d", MaxPage, next.Number)
	}
	if NewPage(MaxPage - 1).IsLast() {
		t.Fatal("page before MaxPage is not the last")
	}
	for _, raw := range []string{"10000", "10001", strconv.Itoa(math.MaxInt), "99999999999999999999"} {
		if got := ParsePage(raw); got != MaxPage {
			t.Fatalf("ParsePage(%q) expected %d, got %d", raw, MaxPage, got)
		}
	}
	if got := ParsePage("-99999999999999999999"); got != FirstPage {
		t.Fatalf("expected first page, got %d", got)
	}
}
