package episodes

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	eps := []Episode{
		{ID: 1, Season: 1, Number: 1, AirDate: "2026-01-01"},
		{ID: 2, Season: 1, Number: 2, AirDate: "2026-02-14"},
		{ID: 3, Season: 1, Number: 3, AirDate: "2026-02-15"},
		{ID: 4, Season: 1, Number: 4, AirDate: "2026-03-01"},
		{ID: 5, Season: 1, Number: 5, AirDate: ""},
	}

	aired, upcoming := Split(eps, "2026-02-15")

	if got := IDs(aired); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("aired ids = %v, want [1 2 3]", got)
	}
	if got := IDs(upcoming); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("upcoming ids = %v, want [4]", got)
	}
}

func TestSplitMissingAirdateExcludedFromBoth(t *testing.T) {
	aired, upcoming := Split([]Episode{{ID: 1}}, "2026-02-15")
	if len(aired) != 0 || len(upcoming) != 0 {
		t.Fatalf("episode without airdate should be excluded, got aired=%v upcoming=%v", aired, upcoming)
	}
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name  string
		aired []Episode
		want  int // expected episode id
	}{
		{
			name: "latest airdate wins",
			aired: []Episode{
				{ID: 1, Season: 1, Number: 1, AirDate: "2026-01-01"},
				{ID: 2, Season: 1, Number: 2, AirDate: "2026-02-01"},
			},
			want: 2,
		},
		{
			name: "same day resolves to higher episode number",
			aired: []Episode{
				{ID: 1, Season: 3, Number: 7, AirDate: "2026-02-01"},
				{ID: 2, Season: 3, Number: 8, AirDate: "2026-02-01"},
			},
			want: 2,
		},
		{
			name: "same day resolves to higher season first",
			aired: []Episode{
				{ID: 1, Season: 2, Number: 12, AirDate: "2026-02-01"},
				{ID: 2, Season: 3, Number: 1, AirDate: "2026-02-01"},
			},
			want: 2,
		},
		{
			name: "source order does not matter",
			aired: []Episode{
				{ID: 2, Season: 1, Number: 2, AirDate: "2026-02-01"},
				{ID: 1, Season: 1, Number: 1, AirDate: "2026-01-01"},
			},
			want: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			latest, ok := Latest(tc.aired)
			if !ok {
				t.Fatal("expected a latest episode")
			}
			if latest.ID != tc.want {
				t.Fatalf("latest id = %d, want %d", latest.ID, tc.want)
			}
		})
	}
}

func TestLatestEmpty(t *testing.T) {
	if _, ok := Latest(nil); ok {
		t.Fatal("expected no latest episode for empty input")
	}
}

func TestFirstN(t *testing.T) {
	eps := []Episode{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := FirstN(eps, 5); len(got) != 3 {
		t.Fatalf("FirstN beyond length = %d entries, want 3", len(got))
	}
	if got := FirstN(eps, 2); !reflect.DeepEqual(IDs(got), []int{1, 2}) {
		t.Fatalf("FirstN(2) ids = %v, want [1 2]", IDs(got))
	}
}

func TestMatchesIgnoresNameAndAirdate(t *testing.T) {
	rec := AiredRecord{Season: 1, Number: 1, Name: "Pilot", AirDate: "2026-01-01"}
	renamed := Episode{Season: 1, Number: 1, Name: "Pilot (extended)", AirDate: "2026-01-08"}
	if !rec.Matches(renamed) {
		t.Fatal("record should match episode with same (season, number)")
	}
	if rec.Matches(Episode{Season: 1, Number: 2, Name: "Pilot"}) {
		t.Fatal("record should not match different episode number")
	}
}

func TestCode(t *testing.T) {
	ep := Episode{Season: 21, Number: 5}
	if got := ep.Code(); got != "S21E5" {
		t.Fatalf("Code() = %q, want S21E5", got)
	}
}
