package scraper

import "testing"

func TestWeightClassCode(t *testing.T) {
	tests := []struct {
		classText string
		want      string
	}{
		{"Strawweight Bout", "115"},
		{"Flyweight Bout", "125"},
		{"Bantamweight Bout", "135"},
		{"Featherweight Bout", "145"},
		{"Lightweight Bout", "155"},
		{"Welterweight Bout", "170"},
		{"Middleweight Bout", "185"},
		{"Light Heavyweight Bout", "205"},
		{"Heavyweight Bout", "265"},
		{"Catchweight Bout", "CW"},
		{"Women's Strawweight Bout", "115"},
		{"Women’s Flyweight Bout", "125"},
		{"Middleweight Title Bout", "185"},
		{"Light Heavyweight Title Bout", "205"},
		{"Women's Bantamweight Title Bout", "135"},
		{"  Welterweight   Bout  ", "170"},
		{"Openweight Bout", "N/A"},
		{"Super Heavyweight Bout", "N/A"},
		{"Bout", "N/A"},
		{"", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.classText, func(t *testing.T) {
			if got := WeightClassCode(tt.classText); got != tt.want {
				t.Errorf("WeightClassCode(%q) = %q, want %q", tt.classText, got, tt.want)
			}
		})
	}
}

func TestWeightClassCode_Table(t *testing.T) {
	for name, code := range weightClasses {
		if got := WeightClassCode(name + " Bout"); got != code {
			t.Errorf("WeightClassCode(%q) = %q, want %q", name+" Bout", got, code)
		}
	}
}

func TestWinMethodCode(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"Submission", "SUB"},
		{"Decision - Unanimous", "DEC"},
		{"Decision - Split", "DEC"},
		{"KO/TKO", "T/KO"},
		{" KO/TKO ", "T/KO"},
		{"Could Not Continue", ""},
		{"DQ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := WinMethodCode(tt.method); got != tt.want {
				t.Errorf("WinMethodCode(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}
