package models

import "testing"

func TestParseAdStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   AdStatus
		wantOK bool
	}{
		{"ACTIVE", StatusActive, true},
		{"active", StatusActive, true},
		{" Sold ", StatusSold, true},
		{"blocked", StatusBlocked, true},
		{"deleted", StatusDeleted, true},
		{"inactive", StatusInactive, true},
		{"archived", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAdStatus(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAdStatus(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseArea(t *testing.T) {
	if got, ok := ParseArea("srithanu"); !ok || got != AreaSrithanu {
		t.Errorf("ParseArea(srithanu) = %q, %v", got, ok)
	}
	if _, ok := ParseArea("atlantis"); ok {
		t.Error("ParseArea accepted an unknown area")
	}
}

func TestParsePricePeriod(t *testing.T) {
	if got, ok := ParsePricePeriod("Month"); !ok || got != PeriodMonth {
		t.Errorf("ParsePricePeriod(Month) = %q, %v", got, ok)
	}
	if _, ok := ParsePricePeriod("decade"); ok {
		t.Error("ParsePricePeriod accepted an unknown period")
	}
}

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		size      int
		wantPages int
	}{
		{"exact division", 10, 5, 2},
		{"remainder rounds up", 11, 5, 3},
		{"single partial page", 3, 20, 1},
		{"empty", 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPageResponse(nil, 0, tt.size, tt.total)
			if page.TotalPages != tt.wantPages {
				t.Errorf("total_pages = %d, want %d", page.TotalPages, tt.wantPages)
			}
			if page.Content == nil {
				t.Error("content is nil, want empty slice")
			}
		})
	}
}
