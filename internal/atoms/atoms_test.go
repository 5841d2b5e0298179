package atoms

import "testing"

func TestDiameter(t *testing.T) {
	if Neon.Diameter() != 308 {
		t.Errorf("expected neon diameter 308, got %f", Neon.Diameter())
	}
}

func TestRecordsArePhysical(t *testing.T) {
	for _, r := range []Record{Neon, Argon, Oxygen, WaterOxygen, Hydrogen, Configurable} {
		if r.Radius <= 0 || r.Mass <= 0 || r.Epsilon <= 0 {
			t.Errorf("%s: non-positive constant in %+v", r.Name, r)
		}
	}
}
