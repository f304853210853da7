package report

import "testing"

func TestResolveKKM(t *testing.T) {
	tests := []struct {
		name      string
		className string
		kkmMap    map[string]int
		want      int
	}{
		{"configured level", "8B", map[string]int{"8": 70}, 70},
		{"unconfigured level falls back", "9C", map[string]int{}, 75},
		{"nil map falls back", "7A", nil, 75},
		{"other levels do not leak", "7A", map[string]int{"8": 60}, 75},
		{"multi-digit level", "10A", map[string]int{"10": 80}, 80},
		{"no numeric prefix", "Remaja", map[string]int{"7": 70}, 75},
		{"zero value ignored", "7A", map[string]int{"7": 0}, 75},
	}

	for _, tt := range tests {
		if got := ResolveKKM(tt.className, tt.kkmMap); got != tt.want {
			t.Errorf("%s: ResolveKKM(%q) = %d, want %d", tt.name, tt.className, got, tt.want)
		}
	}
}

func TestIsPassing(t *testing.T) {
	tests := []struct {
		score, kkm int
		want       bool
	}{
		{75, 75, true},
		{76, 75, true},
		{74, 75, false},
		{0, 75, false},
		{100, 75, true},
	}

	for _, tt := range tests {
		if got := IsPassing(tt.score, tt.kkm); got != tt.want {
			t.Errorf("IsPassing(%d, %d) = %v, want %v", tt.score, tt.kkm, got, tt.want)
		}
	}
}
