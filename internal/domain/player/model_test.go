package player

import "testing"

func jersey(n int) *int { return &n }

func TestMatches(t *testing.T) {
	p := Player{ID: "p1", TeamID: "t1", Name: "Maya Lopez", JerseyNumber: jersey(17)}

	cases := map[string]bool{
		"":      true,
		"maya":  true,
		"LOPEZ": true,
		"7":     true,
		"17":    true,
		"21":    false,
		"zoe":   false,
	}
	for query, want := range cases {
		if got := p.Matches(query); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", query, got, want)
		}
	}

	if (Player{Name: "Sam"}).Matches("1") {
		t.Fatalf("player without jersey should not match a number")
	}
}

func TestSortRoster(t *testing.T) {
	players := []Player{
		{ID: "1", Name: "zed"},
		{ID: "2", Name: "Amy", JerseyNumber: jersey(9)},
		{ID: "3", Name: "bob"},
		{ID: "4", Name: "Cat", JerseyNumber: jersey(3)},
		{ID: "5", Name: "ann", JerseyNumber: jersey(9)},
	}

	SortRoster(players)

	want := []string{"4", "2", "5", "3", "1"}
	for i, id := range want {
		if players[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, players[i].ID, id)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Player{ID: "p1", TeamID: "t1", Name: "Maya", JerseyNumber: jersey(10)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := valid
	invalid.JerseyNumber = jersey(120)
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected jersey range error")
	}

	invalid = valid
	invalid.TeamID = ""
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected team id error")
	}
}

func TestAvailabilityDefaultsToAbsent(t *testing.T) {
	players := []Player{{ID: "a"}, {ID: "b"}}

	got := Availability(players, map[string]bool{"a": true, "zz": true})

	if len(got) != 2 || !got[0].IsAvailable || got[1].IsAvailable {
		t.Fatalf("unexpected availability: %+v", got)
	}
}
