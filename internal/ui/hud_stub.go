//go:build !ebiten

package ui

// HUD is a no-op placeholder for headless builds.
type HUD struct {
	*Panel
}

// NewHUD returns a HUD that tracks panel state but never draws.
func NewHUD(target SettingsTarget, width int) *HUD { return &HUD{Panel: NewPanel(target, width)} }

// Update is a no-op in the headless build.
func (h *HUD) Update(int, int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any) {}
