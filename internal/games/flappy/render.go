package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdBeakChar  = '▶'
	DeadBirdChar  = '✗'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundTuft    = '╩'
	DirtChar      = '░'
)

// groundTileWidth is the world width of one repeating ground tile.
const groundTileWidth = 32

// viewport maps world pixels onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH int) viewport {
	return viewport{
		sx: float64(dst.Width()) / float64(worldW),
		sy: float64(dst.Height()) / float64(worldH),
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// project maps a world rectangle to the cells it covers. Any non-empty
// rectangle covers at least one cell in each direction.
func (v viewport) project(r core.RectF) core.Rect {
	if r.W <= 0 || r.H <= 0 {
		return core.Rect{}
	}
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1 := core.Max(int(math.Ceil(r.Right()*v.sx)), x0+1)
	y1 := core.Max(int(math.Ceil(r.Bottom()*v.sy)), y0+1)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	vp := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)

	g.drawGround(dst, vp)
	for _, pg := range g.track.Geometry(g.tick) {
		g.drawPipe(dst, vp, pg)
	}
	g.drawBird(dst, vp)

	scoreText := fmt.Sprintf(" Score: %d ", g.score)
	dst.DrawTextColor(dst.Width()-len(scoreText)-1, 0, scoreText, core.ColorScore)

	if g.phase == PhaseGameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawGround draws the ground line with tufts scrolling one world pixel per
// tick, and dirt below it.
func (g *Game) drawGround(dst *core.Screen, vp viewport) {
	groundRow := vp.row(float64(g.cfg.Track.GroundLevel))
	for x := 0; x < dst.Width(); x++ {
		worldX := int(float64(x) / vp.sx)
		ch := GroundChar
		if (worldX+g.tick)%groundTileWidth < int(math.Ceil(1/vp.sx)) {
			ch = GroundTuft
		}
		dst.SetColor(x, groundRow, ch, core.ColorGround)
	}
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), DirtChar, core.ColorGround)
	}
}

// drawPipe renders both segments of one pipe, rims facing the gap.
func (g *Game) drawPipe(dst *core.Screen, vp viewport, pg PipeGeometry) {
	upper := vp.project(pg.Upper.Float())
	if upper.H > 0 {
		dst.DrawRectColor(upper, PipeChar, core.ColorPipe)
		dst.DrawHLine(upper.X, upper.Bottom()-1, upper.W, PipeCapTop, core.ColorPipeCap)
	}

	lower := vp.project(pg.Lower.Float())
	if lower.H > 0 {
		dst.DrawRectColor(lower, PipeChar, core.ColorPipe)
		dst.DrawHLine(lower.X, lower.Y, lower.W, PipeCapBottom, core.ColorPipeCap)
	}
}

// drawBird renders the bird's hitbox; a crashed bird is drawn with crosses.
func (g *Game) drawBird(dst *core.Screen, vp viewport) {
	box := vp.project(g.Hitbox())
	if g.phase == PhaseGameOver {
		dst.DrawRectColor(box, DeadBirdChar, core.ColorDead)
		return
	}
	dst.DrawRectColor(box, BirdChar, core.ColorBird)
	dst.SetColor(box.Right()-1, box.Y, BirdBeakChar, core.ColorBird)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorSky)
	dst.DrawTextCentered(boxY+3, subtitle)
}
