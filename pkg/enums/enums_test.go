package enums

import "testing"

func TestSortKeyOrderIsTotal(t *testing.T) {
	cases := map[SortKey]SortOrder{
		SortNewest:    {Field: "created_at", Direction: SortDescending},
		SortPriceAsc:  {Field: "price_ttd", Direction: SortAscending},
		SortPriceDesc: {Field: "price_ttd", Direction: SortDescending},
		"bogus":       {Field: "created_at", Direction: SortDescending},
		"":            {Field: "created_at", Direction: SortDescending},
	}
	for key, want := range cases {
		if got := key.Order(); got != want {
			t.Fatalf("sort %q expected %+v got %+v", key, want, got)
		}
	}
}

func TestNormalizeSortKey(t *testing.T) {
	if got := NormalizeSortKey("price-desc"); got != SortPriceDesc {
		t.Fatalf("expected price-desc, got %s", got)
	}
	if got := NormalizeSortKey("PRICE-DESC"); got != SortNewest {
		t.Fatalf("sort keys are case sensitive, got %s", got)
	}
	if _, err := ParseSortKey("cheapest"); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestSortKeysReturnsCopy(t *testing.T) {
	keys := SortKeys()
	keys[0] = "mutated"
	if SortKeys()[0] != SortNewest {
		t.Fatal("SortKeys must not expose the backing slice")
	}
}

func TestParseMediaTypeAndRole(t *testing.T) {
	if mt, err := ParseMediaType("video"); err != nil || mt != MediaTypeVideo {
		t.Fatalf("unexpected media type %q err=%v", mt, err)
	}
	if _, err := ParseMediaType("gif"); err == nil {
		t.Fatal("expected invalid media type")
	}
	if role, err := ParseAdminRole("owner"); err != nil || !role.IsValid() {
		t.Fatalf("unexpected role %q err=%v", role, err)
	}
	if AdminRole("customer").IsValid() {
		t.Fatal("customer is not an admin role")
	}
}
