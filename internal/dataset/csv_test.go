package dataset

import (
	"strings"
	"testing"
)

func TestParseLocationsWithHeaderAndDepot(t *testing.T) {
	in := `id,x,y
depot,50,50
a,10,20
b,80,30
`
	depot, locs, err := ParseLocations(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depot == nil || depot.X != 50 || depot.Y != 50 {
		t.Fatalf("depot = %+v, want (50,50)", depot)
	}
	if len(locs) != 2 || locs[0].ID != "a" || locs[1].Y != 30 {
		t.Fatalf("locations = %+v", locs)
	}
}

func TestParseLocationsNoDepotRow(t *testing.T) {
	depot, locs, err := ParseLocations(strings.NewReader("a,0,0\nb,1,1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depot != nil {
		t.Fatalf("unexpected depot %+v", depot)
	}
	if len(locs) != 2 {
		t.Fatalf("got %d locations, want 2", len(locs))
	}
}

func TestParseLocationsErrors(t *testing.T) {
	cases := map[string]string{
		"bad coords":      "a,1,1\nb,x,y\n",
		"wrong fields":    "a,1\n",
		"empty input":     "",
		"duplicate depot": "depot,0,0\ndepot,1,1\na,2,2\n",
	}
	for name, in := range cases {
		if _, _, err := ParseLocations(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
