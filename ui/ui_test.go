package ui

import (
	"math"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistryToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if len(reg.EnabledOverlays()) != 0 {
		t.Fatalf("overlays enabled at start: %v", reg.EnabledOverlays())
	}

	tests := []struct {
		key  int32
		id   OverlayID
		want bool
	}{
		{rl.KeyF, OverlayFloodFill, true},
		{rl.KeyV, OverlayVelocity, true},
		{rl.KeyG, OverlayGrid, true},
		{rl.KeyF, OverlayFloodFill, false},
	}
	for _, tt := range tests {
		id, on, ok := reg.HandleKeyPress(tt.key)
		if !ok || id != tt.id || on != tt.want {
			t.Errorf("HandleKeyPress(%d) = %q, %v, %v; want %q, %v, true", tt.key, id, on, ok, tt.id, tt.want)
		}
	}

	got := reg.EnabledOverlays()
	if len(got) != 2 || got[0] != OverlayVelocity || got[1] != OverlayGrid {
		t.Errorf("EnabledOverlays() = %v, want [velocity grid]", got)
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key matched an overlay")
	}
	if reg.Toggle("missing") {
		t.Error("Toggle of an unknown overlay reported enabled")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "heat", Exclusive: []OverlayID{OverlayFloodFill}})

	reg.SetEnabled(OverlayFloodFill, true)
	reg.SetEnabled("heat", true)
	if reg.IsEnabled(OverlayFloodFill) {
		t.Error("enabling an exclusive overlay left its partner on")
	}
}

func TestOverlayKeys(t *testing.T) {
	keys := NewOverlayRegistry().Keys()
	if len(keys) != 4 {
		t.Errorf("len(Keys()) = %d, want 4", len(keys))
	}
}

func TestFormatFitness(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.Inf(1), "inf"},
		{0, "0"},
		{0.25, "0.2500"},
		{1.5e-5, "1.500e-05"},
		{2e5, "2.000e+05"},
	}
	for _, tt := range tests {
		if got := FormatFitness(tt.in); got != tt.want {
			t.Errorf("FormatFitness(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	d := HUDData{
		Generation:  7,
		Frame:       12,
		Lifespan:    200,
		Alive:       700,
		Crashed:     40,
		Completed:   10,
		BestFitness: math.Inf(1),
		FPS:         60,
		Speed:       3,
		Paused:      true,
	}
	lines := d.Lines()
	if lines[0] != "Generation: 7" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Frame: 12/200", "Completed: 10", "Best: inf", "Speed: 3x", "PAUSED"} {
		if !strings.Contains(joined, want) {
			t.Errorf("HUD missing %q in\n%s", want, joined)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	for _, tt := range []struct{ in, want int }{{0, 1}, {5, 5}, {99, MaxSpeed}} {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToggleLabel(t *testing.T) {
	desc := OverlayDescriptor{Name: "Grid Lines", KeyLabel: "G"}
	if got := toggleLabel(desc, true); got != "[G] Grid Lines: on" {
		t.Errorf("toggleLabel = %q", got)
	}
	desc.KeyLabel = ""
	if got := toggleLabel(desc, false); got != "Grid Lines: off" {
		t.Errorf("toggleLabel = %q", got)
	}
}
