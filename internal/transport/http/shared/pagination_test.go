package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", target: "/audit", wantLimit: 100, wantOffset: 0},
		{name: "explicit window", target: "/audit?limit=20&offset=40", wantLimit: 20, wantOffset: 40},
		{name: "limit capped", target: "/audit?limit=9999", wantLimit: 500, wantOffset: 0},
		{name: "garbage falls back", target: "/audit?limit=abc&offset=-3", wantLimit: 100, wantOffset: 0},
		{name: "zero limit falls back", target: "/audit?limit=0", wantLimit: 100, wantOffset: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			page := ParsePagination(httptest.NewRequest("GET", tc.target, nil), 100, 500)
			if page.Limit != tc.wantLimit || page.Offset != tc.wantOffset {
				t.Fatalf("got limit=%d offset=%d, want limit=%d offset=%d",
					page.Limit, page.Offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
