package matcher

import "testing"

func TestCanonOperBlock(t *testing.T) {
	tests := []struct {
		name     string
		dep      string
		building string
		want     string
	}{
		{"floor 6 fpc", "Оперблок 6 этаж", "корпус ФПЦ", "ОПЕРБЛОК 6 ЭТАЖ ФПЦ"},
		{"floor 4 kdc", "оперблок 4", "КДЦ", "ОПЕРБЛОК 4 ЭТАЖ КДЦ"},
		{"floor 3 annex", "Оперблок 3 эт.", "надстройка", "ОПЕРБЛОК 3 ЭТАЖ НАДСТРОЙ"},
		{"floor 2 main", "оперблок 2 этаж", "главный корпус", "ОПЕРБЛОК 2 ЭТАЖ"},
		{"floor 5 main", "оперблок 5", "главный", "ОПЕРБЛОК 5 ЭТАЖ"},
		{"floor 6 main", "Оперблок 6", "главный корпус", "ОПЕРБЛОК 6 ЭТАЖ"},
		{"floor 8 main", "оперблок 8 этаж", "Главный", "ОПЕРБЛОК 8 ЭТАЖ"},
		{"no keyword", "отделение 6 этаж", "ФПЦ", ""},
		{"no floor digit", "оперблок", "главный корпус", ""},
		{"unrecognized floor", "оперблок 7 этаж", "главный корпус", ""},
		{"floor without building hint", "оперблок 2 этаж", "", ""},
		{"wrong building for floor 4", "оперблок 4 этаж", "главный корпус", ""},
		{"multi-digit floor unsupported", "оперблок 10 этаж", "главный корпус", ""},
		{"digit inside larger number", "оперблок 26 этаж", "главный корпус", ""},
		{"standalone digit after larger number", "оперблок 10 зал 2", "главный корпус", "ОПЕРБЛОК 2 ЭТАЖ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonOperBlock(tt.dep, tt.building); got != tt.want {
				t.Errorf("CanonOperBlock(%q, %q) = %q, want %q", tt.dep, tt.building, got, tt.want)
			}
		})
	}
}

func TestStandaloneFloor(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"оперблок 6 этаж", 6},
		{"оперблок 10 этаж", 0},
		{"зал 62", 0},
		{"корпус 1, этаж 2", 2},
		{"", 0},
	}

	for _, tt := range tests {
		if got := standaloneFloor(tt.input); got != tt.want {
			t.Errorf("standaloneFloor(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
