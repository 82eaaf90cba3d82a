package wind

import "testing"

func TestNearestPicksClosestGridPoint(t *testing.T) {
	f := NewField([]Sample{
		{Lat: 20, Lon: 140, U10: 3, V10: -1},
		{Lat: 20, Lon: 141, U10: 5, V10: 2},
		{Lat: 21, Lon: 140, U10: -4, V10: 6},
	})

	u, v := f.Nearest(20.1, 140.1)
	if u != 3 || v != -1 {
		t.Errorf("nearest(20.1,140.1) = (%f,%f), want (3,-1)", u, v)
	}

	u, v = f.Nearest(20.9, 139.8)
	if u != -4 || v != 6 {
		t.Errorf("nearest(20.9,139.8) = (%f,%f), want (-4,6)", u, v)
	}
}

func TestNearestEmptyFieldIsCalm(t *testing.T) {
	var f *Field
	if u, v := f.Nearest(20, 140); u != 0 || v != 0 {
		t.Errorf("nil field wind = (%f,%f), want calm", u, v)
	}
	if u, v := NewField(nil).Nearest(20, 140); u != 0 || v != 0 {
		t.Errorf("empty field wind = (%f,%f), want calm", u, v)
	}
}
