package loan

import "testing"

func TestStatus_LabelAndColorCoverEveryStatus(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%s not valid", s)
		}
		if s.Label() == string(s) {
			t.Fatalf("%s has no label", s)
		}
		if s.Color() == "" {
			t.Fatalf("%s has no colour", s)
		}
		seen[s.Label()] = true
	}
	if len(seen) != len(Statuses) {
		t.Fatalf("labels are not unique: %v", seen)
	}
	if Status("LOST").Valid() {
		t.Fatal("unknown status accepted")
	}
}

func TestStatus_Terminal(t *testing.T) {
	want := map[Status]bool{
		StatusCleared:   true,
		StatusRescinded: true,
		StatusDefaulted: true,
	}
	for _, s := range Statuses {
		if s.Terminal() != want[s] {
			t.Fatalf("%s.Terminal() = %v", s, s.Terminal())
		}
	}
}
