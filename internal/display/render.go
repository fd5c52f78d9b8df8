package display

import (
	"fmt"

	"github.com/sweeney/bin-monitor/internal/logic"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Text baselines for the four rows of the panel.
var rows = [4]int16{11, 26, 41, 56}

// Fill bar geometry (Graphs section).
const (
	barX = 4
	barY = 20
	barW = 120
	barH = 14
)

// Trend plot geometry (Trends section).
const (
	plotLeft   = 4
	plotRight  = 123
	plotTop    = 18
	plotBottom = 62
)

// Renderer draws the active section of the monitor UI.
type Renderer struct {
	fb       *Framebuffer
	font     tinyfont.Fonter
	sections int
}

// NewRenderer creates a Renderer drawing into fb. sections is the number of
// reachable sections, used for the page dots.
func NewRenderer(fb *Framebuffer, sections int) *Renderer {
	return &Renderer{
		fb:       fb,
		font:     &proggy.TinySZ8pt7b,
		sections: sections,
	}
}

// Render redraws the panel from the state and pushes it to the output.
func (r *Renderer) Render(s logic.SystemState, trend []float64) error {
	r.fb.Clear()

	if !s.Powered {
		r.centered("SENSOR: OFF", Height/2+4)
		return r.fb.Display()
	}

	switch s.Section {
	case logic.SectionGraphs:
		r.drawGraphs(s)
	case logic.SectionTrends:
		r.drawTrends(trend)
	case logic.SectionNightMode:
		r.drawNightMode(s)
	default:
		r.drawMain(s)
	}
	r.drawPageDots(s.Section)

	return r.fb.Display()
}

func (r *Renderer) drawMain(s logic.SystemState) {
	r.centered("SENSOR: ON", rows[0])
	r.centered(fmt.Sprintf("Fill: %.1f%%", s.OccupancyPct), rows[1])
	if s.HasReading() {
		r.centered(fmt.Sprintf("Dist: %.1f cm", s.DistanceCm), rows[2])
	} else {
		r.centered("Dist: --", rows[2])
	}
	r.centered("Night: "+onOff(s.NightMode), rows[3])
}

func (r *Renderer) drawGraphs(s logic.SystemState) {
	r.text("Fill level", 2, rows[0])

	rect(r.fb, barX, barY, barW, barH)
	inner := int16(s.OccupancyPct / 100 * float64(barW-4))
	if inner > 0 {
		r.fb.FillRectangle(barX+2, barY+2, inner, barH-4, On)
	}

	// Tier marks under the bar
	for _, pct := range []float64{logic.MediumThresholdPct, logic.HighThresholdPct} {
		x := barX + 2 + int16(pct/100*float64(barW-4))
		line(r.fb, x, barY+barH, x, barY+barH+3)
	}

	r.centered(fmt.Sprintf("%.1f%% %s", s.OccupancyPct, s.Tier()), rows[3])
}

func (r *Renderer) drawTrends(trend []float64) {
	r.text("Trend", 2, rows[0])
	if len(trend) == 0 {
		return
	}

	point := func(i int) (int16, int16) {
		x := int16(plotLeft)
		if len(trend) > 1 {
			x = plotLeft + int16(i*(plotRight-plotLeft)/(len(trend)-1))
		}
		v := trend[i]
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		y := plotBottom - int16(v/100*float64(plotBottom-plotTop))
		return x, y
	}

	px, py := point(0)
	r.fb.SetPixel(px, py, On)
	for i := 1; i < len(trend); i++ {
		x, y := point(i)
		line(r.fb, px, py, x, y)
		px, py = x, y
	}
}

func (r *Renderer) drawNightMode(s logic.SystemState) {
	r.centered("Night mode", rows[0])
	r.centered(onOff(s.NightMode), rows[2]-4)
	r.centered("press to toggle", rows[3])
}

// drawPageDots marks the active section in the top right corner.
func (r *Renderer) drawPageDots(active logic.Section) {
	if r.sections <= 1 {
		return
	}
	for i := 0; i < r.sections; i++ {
		x := int16(Width - 4 - (r.sections-1-i)*5)
		if logic.Section(i) == active {
			r.fb.FillRectangle(x-1, 1, 3, 3, On)
		} else {
			r.fb.SetPixel(x, 2, On)
		}
	}
}

func (r *Renderer) text(s string, x, y int16) {
	tinyfont.WriteLine(r.fb, r.font, x, y, s, On)
}

func (r *Renderer) centered(s string, y int16) {
	_, w := tinyfont.LineWidth(r.font, s)
	x := (Width - int16(w)) / 2
	if x < 0 {
		x = 0
	}
	r.text(s, x, y)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func rect(fb *Framebuffer, x, y, w, h int16) {
	line(fb, x, y, x+w-1, y)
	line(fb, x, y+h-1, x+w-1, y+h-1)
	line(fb, x, y, x, y+h-1)
	line(fb, x+w-1, y, x+w-1, y+h-1)
}

// line draws with Bresenham's algorithm.
func line(fb *Framebuffer, x0, y0, x1, y1 int16) {
	dx := abs16(x1 - x0)
	dy := -abs16(y1 - y0)
	sx, sy := int16(1), int16(1)
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		fb.SetPixel(x0, y0, On)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
