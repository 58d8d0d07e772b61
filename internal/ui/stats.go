package ui

import (
	"fmt"
	"image/color"

	"ignis/internal/metrics"
)

// FastPhysicsFPS is the physics rate above which stats are drawn as fast.
const FastPhysicsFPS = 100

var (
	// FastColor marks a physics rate above FastPhysicsFPS.
	FastColor = color.RGBA{R: 0x5c, G: 0xe0, B: 0x6e, A: 0xff}
	// SlowColor marks everything else.
	SlowColor = color.RGBA{R: 0xff, G: 0xb3, B: 0x2e, A: 0xff}
)

// SpeedColor picks the stats color for a physics rate.
func SpeedColor(physicsRate float64) color.RGBA {
	if physicsRate > FastPhysicsFPS {
		return FastColor
	}
	return SlowColor
}

// StatsLines formats a summary as the multi-line stats panel.
func StatsLines(s metrics.Summary) []string {
	return []string{
		fmt.Sprintf("Physics: %.0f FPS", s.PhysicsRate),
		fmt.Sprintf("Render:  %.0f FPS", s.RenderRate),
		fmt.Sprintf("Memory:  %d MB", s.MemoryMB),
		fmt.Sprintf("Mode:    %s %s", s.Mode, s.Policy),
		fmt.Sprintf("Grid:    %s", s.Size),
		fmt.Sprintf("Score:   %.1f Mcell/s", s.Score),
	}
}

// StatusLine squeezes a summary onto one line for narrow displays.
func StatusLine(s metrics.Summary) string {
	return fmt.Sprintf("phys %.0f fps | render %.0f fps | %d MB | %s %s %s | %.1f Mcell/s",
		s.PhysicsRate, s.RenderRate, s.MemoryMB, s.Size, s.Mode, s.Policy, s.Score)
}
