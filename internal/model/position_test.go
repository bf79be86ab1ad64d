package model

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		coord string
		want  Position
		ok    bool
	}{
		{"e2", Position{Row: 6, Col: 4}, true},
		{"a1", Position{Row: 7, Col: 0}, true},
		{"h8", Position{Row: 0, Col: 7}, true},
		{"a8", Position{Row: 0, Col: 0}, true},
		{"h1", Position{Row: 7, Col: 7}, true},
		{"d5", Position{Row: 3, Col: 3}, true},
		{"E2", Position{Row: 6, Col: 4}, true},
		{"H8", Position{Row: 0, Col: 7}, true},
		{"i9", Position{}, false},
		{"I9", Position{}, false},
		{"a0", Position{}, false},
		{"z5", Position{}, false},
		{"e", Position{}, false},
		{"ee2", Position{}, false},
		{"eE", Position{}, false},
		{"", Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.coord, func(t *testing.T) {
			got, ok := ParsePosition(tt.coord)
			if ok != tt.ok {
				t.Fatalf("ParsePosition(%q) ok = %v, want %v", tt.coord, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("ParsePosition(%q) = %v, want %v", tt.coord, got, tt.want)
			}
		})
	}
}

func TestPositionStringRoundTrip(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pos := Position{Row: row, Col: col}
			got, ok := ParsePosition(pos.String())
			if !ok || got != pos {
				t.Fatalf("round trip of %v via %q gave %v, ok=%v", pos, pos.String(), got, ok)
			}
		}
	}
}

func TestPositionString(t *testing.T) {
	if s := (Position{Row: 6, Col: 4}).String(); s != "e2" {
		t.Errorf("got %q, want e2", s)
	}
	if s := (Position{Row: 0, Col: 7}).String(); s != "h8" {
		t.Errorf("got %q, want h8", s)
	}
}

func TestInBounds(t *testing.T) {
	for _, pos := range []Position{{0, 0}, {7, 7}, {0, 7}, {7, 0}, {3, 4}} {
		if !pos.InBounds() {
			t.Errorf("%v should be in bounds", pos)
		}
	}
	for _, pos := range []Position{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {8, 8}, {-1, -1}} {
		if pos.InBounds() {
			t.Errorf("%v should be out of bounds", pos)
		}
	}
}
