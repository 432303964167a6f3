package chroma

import (
	"fmt"
	"strconv"

	"github.com/dmelnik/chromamerge/internal/core"
	"github.com/dmelnik/chromamerge/internal/games/chroma/board"
)

const (
	cellWidth  = 5 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
)

// screenColor maps a tile color to a terminal color.
func screenColor(c board.Color) core.Color {
	switch c {
	case board.ColorRed:
		return core.ColorBrightRed
	case board.ColorGreen:
		return core.ColorBrightGreen
	case board.ColorBlue:
		return core.ColorBrightBlue
	case board.ColorYellow:
		return core.ColorBrightYellow
	case board.ColorPurple:
		return core.ColorBrightMagenta
	default:
		return core.ColorWhite
	}
}

// specialMark is the one-cell glyph for a promoted special.
func specialMark(s board.Special) rune {
	switch s {
	case board.SpecialRowClear:
		return '═'
	case board.SpecialColumnClear:
		return '║'
	case board.SpecialAreaClear:
		return '◎'
	case board.SpecialColorClear:
		return '◍'
	case board.SpecialValueBoost:
		return '+'
	case board.SpecialWildcard:
		return '?'
	default:
		return ' '
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	cols := g.session.Columns()
	rows := g.session.Rows()

	// Calculate board position (centered)
	boardW := cols*cellWidth + 1  // +1 for right border
	boardH := rows*cellHeight + 1 // +1 for bottom border

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	// Render HUD
	g.renderHUD(dst, boardX, boardW)

	// Render board
	g.renderGrid(dst, boardX, boardY, cols, rows)
	g.renderFlashes(dst, boardX, boardY)
	g.renderObstacles(dst, boardX, boardY, cols, rows)
	g.renderTiles(dst, boardX, boardY)
	g.renderCursor(dst, boardX, boardY)

	// Render overlays
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	hint := "Please resize terminal"
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	// Title
	title := "ChromaMerge"
	titleX := boardX + (boardW-len(title))/2
	dst.DrawText(titleX, 0, title)

	// Score
	scoreStr := fmt.Sprintf("Score: %d", g.score)
	dst.DrawText(boardX, 1, scoreStr)

	// Level/Target info (campaign) or board fill (endless)
	var infoStr string
	if g.mode == ModeCampaign {
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.target)
	} else {
		infoStr = fmt.Sprintf("Tiles: %d/%d", g.session.Store().TileCount(), g.session.Columns()*g.session.Rows())
	}

	infoX := boardX + boardW - len(infoStr)
	if infoX < boardX {
		infoX = boardX
	}
	dst.DrawText(infoX, 1, infoStr)

	// Mode line with grab indicator
	modeStr := g.currentLevel().Name
	if g.grabbed {
		modeStr += "  [GRABBED]"
	}
	modeX := boardX + (boardW-len(modeStr))/2
	dst.DrawText(modeX, 2, modeStr)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY, cols, rows int) {
	for y := 0; y <= rows; y++ {
		for x := 0; x <= cols; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			// Draw corner/intersection
			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == cols:
				corner = '┐'
			case y == rows && x == 0:
				corner = '└'
			case y == rows && x == cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			// Draw horizontal line to the right
			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}

			// Draw vertical line down
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderFlashes highlights cells hit by destruction or promotions.
func (g *Game) renderFlashes(dst *core.Screen, boardX, boardY int) {
	for _, f := range g.animator.Flashes() {
		cx := boardX + f.Cell.X*cellWidth + 1
		cy := boardY + f.Cell.Y*cellHeight + 1
		for i := 0; i < cellWidth-1; i++ {
			dst.SetColored(cx+i, cy, '·', core.ColorBrightWhite)
		}
	}
}

// renderObstacles draws obstacles straight from the grid store.
func (g *Game) renderObstacles(dst *core.Screen, boardX, boardY, cols, rows int) {
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := board.C(x, y)
			o, ok := g.session.Get(c)
			if !ok || !o.IsObstacle() {
				continue
			}

			cx := boardX + x*cellWidth + 1
			cy := boardY + y*cellHeight + 1
			for i := 0; i < cellWidth-1; i++ {
				dst.SetColored(cx+i, cy, '▒', core.ColorGray)
			}
			// Durability shown in the cell center
			dur := strconv.Itoa(o.Durability)
			dst.SetColored(cx+(cellWidth-1)/2, cy, rune(dur[0]), core.ColorWhite)
		}
	}
}

// renderTiles draws every tile sprite at its animated position.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for _, s := range g.animator.Sprites() {
		o, ok := g.session.Store().Occupant(s.ID)
		if !ok {
			continue
		}

		cx := boardX + int(s.X*cellWidth+0.5) + 1
		cy := boardY + int(s.Y*cellHeight+0.5) + 1
		col := screenColor(o.Color)

		// Value centered in the cell, color glyph on the left
		valStr := strconv.Itoa(o.Value)
		if len(valStr) > cellWidth-2 {
			valStr = valStr[:cellWidth-2]
		}

		glyph := o.Color.Char()
		if s.Pulsing() || s.Popping() {
			glyph = '*'
		}
		dst.SetColored(cx, cy, glyph, col)
		dst.DrawTextColored(cx+1, cy, valStr, col)

		if o.Special != board.SpecialNone {
			dst.SetColored(cx+cellWidth-2, cy, specialMark(o.Special), core.ColorBrightWhite)
		}
	}
}

// renderCursor draws the selection brackets around the cursor cell.
func (g *Game) renderCursor(dst *core.Screen, boardX, boardY int) {
	cx := boardX + g.cursor.X*cellWidth
	cy := boardY + g.cursor.Y*cellHeight + 1

	col := core.ColorBrightWhite
	if g.grabbed {
		col = core.ColorBrightYellow
	}
	dst.SetColored(cx, cy, '[', col)
	dst.SetColored(cx+cellWidth, cy, ']', col)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		targetStr := fmt.Sprintf("Target %d reached!", g.target)
		if g.levelIndex >= LevelCount()-1 {
			g.drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			nextStr := fmt.Sprintf("Next: %s", Levels[g.levelIndex+1].Name)
			g.drawOverlay(dst, centerX, centerY, targetStr, nextStr)
		}
		return
	}

	if g.won {
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "Every color conquered!", "Press R to restart")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Final score: %d", g.score)
		g.drawOverlay(dst, centerX, centerY, "BOARD FULL", scoreStr, "Press R to restart")
		return
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	// Draw box
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	// Draw border
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	// Draw text
	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Cursor | Space: Grab | P: Pause | R: Restart | Q: Quit"
}
