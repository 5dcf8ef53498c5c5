package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed bounds for the steps-per-frame slider.
const (
	MinSpeed = 1
	MaxSpeed = 20
)

// ControlState is what the control panel edits.
type ControlState struct {
	Paused bool
	Speed  int
}

// ControlActions reports one-shot button presses.
type ControlActions struct {
	SkipGeneration bool
	ResetCamera    bool
}

// ClampSpeed limits a steps-per-frame value to the slider range.
func ClampSpeed(v int) int {
	return min(max(v, MinSpeed), MaxSpeed)
}

// ControlPanel renders the right-side raygui panel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a control panel at (x, y).
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel, applies slider and button edits to state and
// returns any one-shot actions.
func (c *ControlPanel) Draw(state *ControlState, overlays *OverlayRegistry) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	descs := overlays.All()
	height := pad*2 + line + 30 + 18 + 30 + 34 + int32(len(descs))*(line+6)
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + pad)
	inner := float32(c.width - pad*2)
	y := c.y + pad

	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += line + 4

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner/2 - 4, Height: 24}, label) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + inner/2 + 4, Y: float32(y), Width: inner/2 - 4, Height: 24}, "Skip gen") {
		actions.SkipGeneration = true
	}
	y += 30

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 18
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 16, Y: float32(y), Width: inner - 40, Height: 18},
		fmt.Sprint(MinSpeed), fmt.Sprint(MaxSpeed),
		float32(state.Speed), MinSpeed, MaxSpeed,
	)
	state.Speed = ClampSpeed(int(speed + 0.5))
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, "Reset camera") {
		actions.ResetCamera = true
	}
	y += 34

	for _, desc := range descs {
		on := overlays.IsEnabled(desc.ID)
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: float32(line + 2)}, toggleLabel(desc, on)) {
			overlays.Toggle(desc.ID)
		}
		y += line + 6
	}

	return actions
}

func toggleLabel(desc OverlayDescriptor, on bool) string {
	state := "off"
	if on {
		state = "on"
	}
	if desc.KeyLabel == "" {
		return fmt.Sprintf("%s: %s", desc.Name, state)
	}
	return fmt.Sprintf("[%s] %s: %s", desc.KeyLabel, desc.Name, state)
}
