package booking

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"12-30", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q) = %d, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
		{1440, "23:59"}, // clamped to the same day
	}
	for _, tc := range tests {
		if got := formatClock(tc.in); got != tc.want {
			t.Errorf("formatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false, want true", s)
		}
	}
	for _, s := range []Status{"", "pending", "DONE"} {
		if s.Valid() {
			t.Errorf("Status(%q).Valid() = true, want false", s)
		}
	}
}

func TestTypeValid(t *testing.T) {
	if !TypeOnline.Valid() || !TypeOffline.Valid() {
		t.Error("known booking types reported invalid")
	}
	if Type("WALKIN").Valid() {
		t.Error(`Type("WALKIN").Valid() = true, want false`)
	}
}
