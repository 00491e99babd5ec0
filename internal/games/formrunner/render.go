package formrunner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/sim"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// cellCols is how many screen columns one tile spans; one tile is one row.
// Terminal cells are roughly twice as tall as wide.
const cellCols = 2

// Minimum screen size for a playable view.
const (
	minScreenW = 40
	minScreenH = 12
)

type tileStyle struct {
	glyph [cellCols]rune
	color core.Color
}

var tileStyles = map[world.TileKind]tileStyle{
	world.Empty:     {glyph: [cellCols]rune{' ', ' '}},
	world.Solid:     {glyph: [cellCols]rune{'█', '█'}, color: core.ColorGray},
	world.Diggable:  {glyph: [cellCols]rune{'▒', '▒'}, color: core.ColorYellow},
	world.Breakable: {glyph: [cellCols]rune{'▓', '▓'}, color: core.ColorOrange},
	world.Spike:     {glyph: [cellCols]rune{'^', '^'}, color: core.ColorBrightWhite},
	world.Lava:      {glyph: [cellCols]rune{'≈', '≈'}, color: core.ColorRed},
	world.Liquid:    {glyph: [cellCols]rune{'~', '~'}, color: core.ColorBlue},
	world.Exit:      {glyph: [cellCols]rune{'[', ']'}, color: core.ColorBrightGreen},
}

var formColors = map[sim.Form]core.Color{
	sim.FormYellow: core.ColorBrightYellow,
	sim.FormBlue:   core.ColorBrightCyan,
	sim.FormRed:    core.ColorBrightRed,
	sim.FormGreen:  core.ColorBrightGreen,
}

var poseGlyphs = map[sim.Pose]rune{
	sim.PoseIdle:    '@',
	sim.PoseRun:     '@',
	sim.PoseJump:    '^',
	sim.PoseFall:    'v',
	sim.PoseAttack:  '*',
	sim.PoseAbility: '!',
	sim.PoseSwing:   '&',
}

var spinGlyphs = [...]rune{'|', '/', '-', '\\'}

// Render draws the HUD, the visible part of the level and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Level failed to load")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if g.session == nil {
		return
	}
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderTiles(dst)
	g.renderHooks(dst)
	g.renderPickups(dst)
	g.renderEnemies(dst)
	g.renderProjectiles(dst)
	g.renderPlayer(dst)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// toScreen maps a world pixel to a screen cell.
func (g *Game) toScreen(p core.Vec) (int, int) {
	t := g.cfg.World.TileSize
	x := int(math.Floor((p.X - g.camera.X) / t * cellCols))
	y := int(math.Floor((p.Y-g.camera.Y)/t)) + hudRows
	return x, y
}

// inField reports whether a screen cell belongs to the playfield.
func inField(dst *core.Screen, x, y int) bool {
	return x >= 0 && x < dst.Width() && y >= hudRows && y < dst.Height()-hudRows
}

func (g *Game) put(dst *core.Screen, p core.Vec, r rune, c core.Color) {
	x, y := g.toScreen(p)
	if inField(dst, x, y) {
		dst.SetColored(x, y, r, c)
	}
}

func (g *Game) renderTiles(dst *core.Screen) {
	grid := g.session.Grid
	t := grid.TileSize
	tx0 := int(math.Floor(g.camera.X / t))
	ty0 := int(math.Floor(g.camera.Y / t))
	// Sub-tile camera offset, in screen columns.
	offX := int(math.Floor((g.camera.X - float64(tx0)*t) / t * cellCols))

	for row := hudRows; row < dst.Height()-hudRows; row++ {
		ty := ty0 + row - hudRows
		if ty >= grid.Height {
			break
		}
		for col := 0; col < dst.Width(); col++ {
			c := col + offX
			tx := tx0 + c/cellCols
			if tx >= grid.Width {
				break
			}
			st, ok := tileStyles[grid.Kind(tx, ty)]
			if !ok {
				continue
			}
			dst.SetColored(col, row, st.glyph[c%cellCols], st.color)
		}
	}
}

func (g *Game) renderHooks(dst *core.Screen) {
	s := g.session
	for _, a := range s.Hooks {
		g.put(dst, a, '+', core.ColorWhite)
	}

	anchor, end, ok := s.Rope()
	if !ok {
		return
	}
	d := end.Sub(anchor)
	n := int(d.Len() / (s.Grid.TileSize / 4))
	for i := 1; i < n; i++ {
		p := anchor.Add(d.Scale(float64(i) / float64(n)))
		x, y := g.toScreen(p)
		if inField(dst, x, y) && dst.Get(x, y) == ' ' {
			dst.SetColored(x, y, '·', core.ColorGray)
		}
	}
}

func (g *Game) renderPickups(dst *core.Screen) {
	for _, item := range g.session.Pickups {
		if item.Collected {
			continue
		}
		r := 'o'
		if math.Sin(item.Bob) > 0.5 {
			r = 'O'
		}
		g.put(dst, item.Rect.Center(), r, core.ColorBrightMagenta)
	}
}

func (g *Game) renderEnemies(dst *core.Screen) {
	for _, e := range g.session.Enemies {
		if !e.Alive {
			continue
		}
		r, c := 'M', core.ColorRed
		if e.Stun > 0 {
			r, c = 'm', core.ColorMagenta
		}
		g.put(dst, e.Center(), r, c)
	}
}

func (g *Game) renderProjectiles(dst *core.Screen) {
	for _, pr := range g.session.Projectiles {
		switch pr.Kind {
		case sim.ProjectileFire:
			g.put(dst, pr.Pos, '*', core.ColorOrange)
		case sim.ProjectileBubble:
			g.put(dst, pr.Pos, 'o', core.ColorBrightCyan)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen) {
	s := g.session
	p := &s.Player

	// Blink while invulnerable.
	if p.Invuln > 0 && int(s.Elapsed*10)%2 == 0 {
		return
	}

	r := poseGlyphs[p.Pose()]
	if p.AirSpinActive && p.AirSpin != 0 {
		i := int(math.Floor((p.AirSpin + math.Pi) / (math.Pi / 4)))
		r = spinGlyphs[i%len(spinGlyphs)]
	}
	c := formColors[p.Form]
	if p.TransformFx > 0 {
		c = core.ColorBrightWhite
	}
	g.put(dst, p.Center(), r, c)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	p := &s.Player

	left := fmt.Sprintf("%s  Score %d  Fruits %d  Lives %d", g.Title(), s.Score, s.Fruits, s.Lives)
	dst.DrawText(1, 0, left)
	timer := fmt.Sprintf("Time %3.0f", math.Ceil(s.Timer))
	dst.DrawText(dst.Width()-len(timer)-1, 0, timer)

	form := fmt.Sprintf("Form: %s (%s)", p.Form, p.Form.Ability())
	dst.DrawTextColored(1, 1, form, formColors[p.Form])

	x := len([]rune(form)) + 3
	switch {
	case p.Charging:
		dst.DrawText(x, 1, "Charge "+meter(p.Charge/s.Config().Abilities.ChargeCap, 10))
	case p.Drown > 0:
		dst.DrawTextColored(x, 1, "Air "+meter(1-p.Drown/s.Config().Player.DrownLimit, 10), core.ColorCyan)
	}

	dst.DrawText(1, dst.Height()-2, s.Status())
	x = 1
	for i, f := range sim.Forms {
		label := fmt.Sprintf("%d %s", i+1, f)
		c := core.ColorGray
		if f == p.Form {
			c = formColors[f]
		}
		dst.DrawTextColored(x, dst.Height()-1, label, c)
		x += len(label) + 2
	}
}

// meter draws a bar of width cells filled to frac.
func meter(frac float64, width int) string {
	n := int(math.Round(core.ClampF(frac, 0, 1) * float64(width)))
	return "[" + strings.Repeat("#", n) + strings.Repeat("-", width-n) + "]"
}

func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.session
	switch {
	case s.State == sim.StateWon:
		drawCenteredBox(dst, "LEVEL COMPLETE", fmt.Sprintf("Score: %d  |  Press R to play again", s.Score))
	case s.State == sim.StateGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case s.ShowHelp:
		drawHelp(dst)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	drawPanel(dst, []string{title, "", subtitle})
}

func drawHelp(dst *core.Screen) {
	lines := []string{"HELP", ""}
	for i, f := range sim.Forms {
		lines = append(lines, fmt.Sprintf("%d  %-7s %s", i+1, f, f.Ability()))
	}
	lines = append(lines, "",
		"Hold J with yellow to charge a bigger shot.",
		"Jump again in the air for a double jump.",
		"Jump while swinging to launch off the rope.",
		"Only blue can breathe underwater.",
		"Land on enemies to stomp them.",
		"", "Press H to close")
	drawPanel(dst, lines)
}

// drawPanel draws a bordered box with centered lines. An empty second
// line becomes a rule under the title.
func drawPanel(dst *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	if len(lines) > 1 && lines[1] == "" {
		dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─')
	}
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l)
	}
}
