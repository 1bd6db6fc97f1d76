package paging

import (
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		want       Params
	}{
		{"defaults", 0, 0, Params{Page: 0, Size: DefaultSize}},
		{"negative page", -3, 20, Params{Page: 0, Size: 20}},
		{"size capped", 1, 500, Params{Page: 1, Size: MaxSize}},
		{"passthrough", 2, 15, Params{Page: 2, Size: 15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.page, tc.size); got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/pets?page=2&size=5", nil)
	if got := FromRequest(r); got != (Params{Page: 2, Size: 5}) {
		t.Fatalf("got %+v", got)
	}

	r = httptest.NewRequest("GET", "/pets?page=basura&size=", nil)
	if got := FromRequest(r); got != (Params{Page: 0, Size: DefaultSize}) {
		t.Fatalf("garbage params should fall back to defaults, got %+v", got)
	}
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	pg := Slice(all, Params{Page: 1, Size: 3})
	if len(pg.Items) != 3 || pg.Items[0] != 4 {
		t.Fatalf("unexpected items: %v", pg.Items)
	}
	if pg.TotalItems != 7 || pg.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", pg)
	}

	// página más allá del final: vacía pero con metadata correcta
	pg = Slice(all, Params{Page: 5, Size: 3})
	if len(pg.Items) != 0 || pg.TotalItems != 7 {
		t.Fatalf("expected empty page with totals, got %+v", pg)
	}
}

func TestMap(t *testing.T) {
	pg := Slice([]int{1, 2, 3}, Params{Page: 0, Size: 10})
	mapped := Map(pg, func(n int) int { return n * 10 })
	if mapped.Items[2] != 30 || mapped.TotalItems != 3 {
		t.Fatalf("unexpected mapped page: %+v", mapped)
	}
}
