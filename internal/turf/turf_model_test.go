package turf

import (
	"reflect"
	"testing"
)

func TestJoinImages(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"empty", nil, ""},
		{"trims and drops empties", []string{" a.jpg ", "", "  ", "b.jpg"}, "a.jpg,b.jpg"},
		{"caps the list", []string{"1", "2", "3", "4", "5", "6", "7"}, "1,2,3,4,5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoinImages(tc.in); got != tc.want {
				t.Errorf("JoinImages(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestImageList(t *testing.T) {
	empty := Turf{}
	if got := empty.ImageList(); got != nil {
		t.Errorf("ImageList() on empty column = %v, want nil", got)
	}

	turf := Turf{Images: "a.jpg,b.jpg"}
	want := []string{"a.jpg", "b.jpg"}
	if got := turf.ImageList(); !reflect.DeepEqual(got, want) {
		t.Errorf("ImageList() = %v, want %v", got, want)
	}
}
