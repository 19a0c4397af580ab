package barwatch

import (
	"encoding/json"
	"testing"
)

func TestParseOunces(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"960.050", "960.05", true},
		{"1,060.100", "1060.1", true},
		{"28,998,876.285", "28998876.285", true},
		{"0.000", "0", true},
		{"", "", false},
		{"-", "", false},
		{"--", "", false},
		{"oz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseOunces(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseOunces(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("ParseOunces(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatioFromAssay(t *testing.T) {
	tests := []struct {
		assay int64
		want  string
	}{
		{9990, "0.999"},
		{9999, "0.9999"},
		{999, "0.0999"},
	}
	for _, tt := range tests {
		if got := RatioFromAssay(tt.assay); got.String() != tt.want {
			t.Errorf("RatioFromAssay(%d) = %s, want %s", tt.assay, got, tt.want)
		}
	}
}

func TestRatioBetween(t *testing.T) {
	lo, hi := R(0.85), R(1.0)
	if !R(0.999).Between(lo, hi) {
		t.Error("0.999 should be in [0.85, 1.0]")
	}
	if !R(0.85).Between(lo, hi) || !R(1.0).Between(lo, hi) {
		t.Error("window bounds are inclusive")
	}
	if R(0.5).Between(lo, hi) {
		t.Error("0.5 should be outside [0.85, 1.0]")
	}
}

func TestOuncesJSON(t *testing.T) {
	// Weights serialize as bare JSON numbers, never quoted strings.
	raw, err := json.Marshal(Oz(960.05))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "960.05" {
		t.Errorf("marshal = %s, want 960.05", raw)
	}

	var oz Ounces
	if err := json.Unmarshal([]byte("1026.89"), &oz); err != nil {
		t.Fatal(err)
	}
	if !oz.Equal(Oz(1026.89)) {
		t.Errorf("unmarshal = %s, want 1026.89", oz)
	}
}

func TestPercentOf(t *testing.T) {
	diff := Oz(100.25).Sub(Oz(100))
	if got := diff.PercentOf(Oz(100)); got.String() != "0.25" {
		t.Errorf("PercentOf = %s, want 0.25", got)
	}
}
