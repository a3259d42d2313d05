package models

import (
	"testing"

	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

func TestDefaultRoutes(t *testing.T) {
	c := DefaultRoutes()
	ids := c.IDs()
	testutil.AssertLen(t, ids, 5)
	testutil.AssertEqual(t, ids[0], "099")
	testutil.AssertEqual(t, ids[4], "Seabus")

	r, ok := c.Lookup("099")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, r.Color, "#f97316")
	testutil.AssertEqual(t, r.Direction, DirectionWest)
	testutil.AssertTrue(t, r.HasPath())
	testutil.AssertLen(t, r.Path, 4)
	testutil.AssertFloatEqual(t, r.Path[0].Lat(), 49.2626, 1e-9)
	testutil.AssertFloatEqual(t, r.Path[3].Lon(), -123.2070, 1e-9)

	sea, ok := c.Lookup("seabus")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, sea.Vehicles, 2)
	testutil.AssertEqual(t, sea.Forward, DirectionNorth)

	r4, ok := c.Lookup("R4")
	testutil.AssertTrue(t, ok)
	testutil.AssertFalse(t, r4.HasPath())
}

func TestRouteCatalog_LookupPadded(t *testing.T) {
	r, ok := DefaultRoutes().Lookup("19")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, r.ID, "019")

	_, ok = DefaultRoutes().Lookup("777")
	testutil.AssertFalse(t, ok)
}

func TestRouteCatalog_AllReturnsCopy(t *testing.T) {
	c := DefaultRoutes()
	all := c.All()
	all[0].Name = "changed"

	r, _ := c.Lookup("099")
	testutil.AssertEqual(t, r.Name, "B-Line Commercial-Broadway / UBC")
}

func TestParseRoutes_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "routes:\n  - name: x\n"},
		{"duplicate id", "routes:\n  - id: a\n  - id: a\n"},
		{"short waypoint", "routes:\n  - id: a\n    path:\n      - [49.1]\n"},
		{"bad latitude", "routes:\n  - id: a\n    path:\n      - [149.1, -123]\n"},
		{"not yaml", "routes: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoutes([]byte(tt.yaml))
			testutil.AssertError(t, err)
		})
	}
}
