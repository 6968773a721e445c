package profile

import "testing"

func TestGet_Known(t *testing.T) {
	p := Get("print")
	if p.CellSize != 400 || p.Backing != "disk" || !p.Lossless {
		t.Errorf("print: got %+v", p)
	}
}

func TestGet_FallsBackToDefault(t *testing.T) {
	p := Get("poster")
	if p.Name != "poster" {
		t.Errorf("name: got %q, want requested name kept", p.Name)
	}
	if p.CellSize != 200 || p.Format != "webp" {
		t.Errorf("fallback: got %+v", p)
	}
	if Get("").Name != DefaultName {
		t.Errorf("empty name: got %q", Get("").Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 3 || names[0] != "default" || names[2] != "thumbnail" {
		t.Errorf("names: got %v", names)
	}
	if !Known("thumbnail") || Known("poster") {
		t.Error("Known mismatch")
	}
}
