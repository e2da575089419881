package device

import (
	"fmt"

	"github.com/vovakirdan/catan-dice/internal/core"
	"github.com/vovakirdan/catan-dice/internal/dice"
)

// Layout constants, in terminal cells.
const (
	statusHeight = 2 // Status line plus separator
	minWidth     = 36
	minHeight    = 16
	diceGap      = 3
	pipRune      = '●'
)

// colorDieColors is the disc color per face of the color die.
var colorDieColors = [dice.MaxFace + 1]core.Color{
	core.ColorWhite,
	core.ColorGreen, core.ColorGreen,
	core.ColorGold, core.ColorGold,
	core.ColorPurple, core.ColorPurple,
}

// castleFace is the art and color of one castle die face.
type castleFace struct {
	art   []string
	color core.Color
}

var (
	shipArt = []string{
		` |\  `,
		`_|_\_`,
		`\___/`,
	}
	castleArt = []string{
		`n_n_n`,
		`|   |`,
		`|_#_|`,
	}
	shipFace = castleFace{art: shipArt, color: core.ColorWhite}
)

// castleFaces maps faces 1-3 to the barbarian ship and 4-6 to the castles.
var castleFaces = [dice.MaxFace + 1]castleFace{
	shipFace,
	shipFace, shipFace, shipFace,
	{art: castleArt, color: core.ColorBlue},
	{art: castleArt, color: core.ColorGold},
	{art: castleArt, color: core.ColorGreen},
}

// menuOption is one radio option on a menu page.
type menuOption struct {
	label       string
	description string
	selected    func(dice.Settings) bool
}

type menuPageContent struct {
	title   string
	options []menuOption
}

var menuPages = [numMenuPages]menuPageContent{
	PageDiceMode: {
		title: "== Dice Mode ==",
		options: []menuOption{
			{"Realistic", "Realistic roll with 2 dice", func(s dice.Settings) bool { return s.Mode == dice.ModeRealistic }},
			{"Equal Distribution", "Every number has the same chance", func(s dice.Settings) bool { return s.Mode == dice.ModeEqual }},
		},
	},
	PageGameVariant: {
		title: "== Game Variant ==",
		options: []menuOption{
			{"Base", "2 number dice", func(s dice.Settings) bool { return s.Variant == dice.VariantBase }},
			{"Cities & Knights", "2 number dice + 1 castle die", func(s dice.Settings) bool { return s.Variant == dice.VariantCitiesAndKnights }},
			{"Traders & Barbarians", "2 number dice + 1 color die", func(s dice.Settings) bool { return s.Variant == dice.VariantTradersAndBarbarians }},
		},
	},
	PagePowerSaving: {
		title: "== Power Saving ==",
		options: []menuOption{
			{"5min", "After 5 min", func(s dice.Settings) bool { return s.PowerSave == dice.PowerSaveAfter5Min }},
			{"10min", "After 10 min", func(s dice.Settings) bool { return s.PowerSave == dice.PowerSaveAfter10Min }},
			{"Never", "No power saving", func(s dice.Settings) bool { return s.PowerSave == dice.PowerSaveNever }},
		},
	},
}

// Render draws the current view to the screen.
func (d *Device) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minWidth || dst.Height() < minHeight {
		h := dst.Height() / 2
		dst.DrawTextCentered(h-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(h, fmt.Sprintf("need %dx%d", minWidth, minHeight), core.ColorGray)
		return
	}

	switch d.view {
	case ViewSleeping:
		d.renderSleep(dst)
	case ViewMenu:
		d.renderMenu(dst)
	case ViewStats:
		d.renderStatus(dst)
		d.renderStats(dst)
	case ViewRolling:
		d.renderStatus(dst)
		if f, ok := d.currentFrame(); ok {
			d.renderDice(dst, d.frameDice(f), f.OffsetX, f.OffsetY)
		}
	default:
		d.renderStatus(dst)
		d.renderDice(dst, d.engine.Dice(), 0, 0)
	}
}

// renderStatus draws the mode, variant and battery icon.
func (d *Device) renderStatus(dst *core.Screen) {
	s := d.Settings()
	dst.DrawTextColored(1, 0, s.Mode.String()+" | "+s.Variant.Short(), core.ColorWhite)

	icon := batteryIcon(d.battery)
	dst.DrawTextColored(dst.Width()-len([]rune(icon))-1, 0, icon, BatteryColor(d.battery))

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// frameDice returns the active dice showing the faces of a transient frame.
func (d *Device) frameDice(f AnimFrame) []dice.Die {
	out := d.engine.Dice()
	for i := range out {
		switch {
		case out[i].Role == dice.RolePrimaryWhite:
			out[i].Face = f.Pair.White
		case out[i].Role == dice.RolePrimaryRed:
			out[i].Face = f.Pair.Red
		case f.HasEvent:
			out[i].Face = f.Event
		}
	}
	return out
}

// dieCells converts a die size in display pixels to terminal cells.
// Cells are roughly twice as tall as wide; heights are kept odd so pips
// have a middle row.
func dieCells(size int) (w, h int) {
	w = core.Max(size/5, 7)
	h = w / 2
	if h%2 == 0 {
		h++
	}
	return w, h
}

// renderDice lays the dice out in a centered row.
func (d *Device) renderDice(dst *core.Screen, dd []dice.Die, offX, offY int) {
	if len(dd) == 0 {
		return
	}
	w, h := dieCells(dd[0].Size)
	total := len(dd)*w + (len(dd)-1)*diceGap

	x := (dst.Width() - total) / 2
	y := statusHeight + (dst.Height()-statusHeight-h)/2

	for _, die := range dd {
		r := core.NewRect(x, y, w, h).Offset(offX, offY)
		r.Y = core.Max(r.Y, statusHeight)
		drawDie(dst, r, die)
		x += w + diceGap
	}
}

func drawDie(dst *core.Screen, r core.Rect, die dice.Die) {
	switch die.Role {
	case dice.RolePrimaryWhite:
		dst.DrawBox(r, core.ColorWhite)
		drawPips(dst, r, die.Face, core.ColorWhite)
	case dice.RolePrimaryRed:
		dst.DrawBox(r, core.ColorRed)
		drawPips(dst, r, die.Face, core.ColorRed)
	case dice.RoleEventColor:
		dst.DrawBox(r, core.ColorWhite)
		drawColorDisc(dst, r, die.Face)
	case dice.RoleEventCastle:
		drawCastle(dst, r, die.Face)
	}
}

// drawPips places the pips of a standard die face.
func drawPips(dst *core.Screen, r core.Rect, face int, c core.Color) {
	offX, offY := r.W/4, r.H/4
	left, right := r.X+offX, r.Right()-1-offX
	top, bottom := r.Y+offY, r.Bottom()-1-offY
	cx, cy := r.Center()

	if face%2 == 1 {
		dst.SetColored(cx, cy, pipRune, c)
	}
	if face > 1 {
		dst.SetColored(left, top, pipRune, c)
		dst.SetColored(right, bottom, pipRune, c)
	}
	if face > 3 {
		dst.SetColored(right, top, pipRune, c)
		dst.SetColored(left, bottom, pipRune, c)
	}
	if face == 6 {
		dst.SetColored(left, cy, pipRune, c)
		dst.SetColored(right, cy, pipRune, c)
	}
}

// drawColorDisc fills the middle of the color die with the face color.
func drawColorDisc(dst *core.Screen, r core.Rect, face int) {
	if face < dice.MinFace || face > dice.MaxFace {
		return
	}
	dw := core.Max(r.W/2, 1)
	dh := core.Max(r.H-2, 1)
	disc := core.NewRect(r.X+(r.W-dw)/2, r.Y+(r.H-dh)/2, dw, dh)
	dst.FillRect(disc, '█', colorDieColors[face])
}

// drawCastle draws the barbarian ship or a colored castle.
func drawCastle(dst *core.Screen, r core.Rect, face int) {
	if face < dice.MinFace || face > dice.MaxFace {
		dst.DrawBox(r, core.ColorGray)
		return
	}
	cf := castleFaces[face]
	border := cf.color
	if cf.color == core.ColorWhite {
		border = core.ColorGray
	}
	dst.DrawBox(r, border)

	artY := r.Y + (r.H-len(cf.art))/2
	for i, line := range cf.art {
		artX := r.X + (r.W-len([]rune(line)))/2
		dst.DrawTextColored(artX, artY+i, line, cf.color)
	}
}

// renderMenu draws the current settings page with radio options.
func (d *Device) renderMenu(dst *core.Screen) {
	page := menuPages[core.Clamp(int(d.menuPage), 0, numMenuPages-1)]
	settings := d.Settings()

	dst.DrawTextColored(2, 0, page.title, core.ColorCyan)
	counter := fmt.Sprintf("%d/%d", d.menuPage+1, numMenuPages)
	dst.DrawTextColored(dst.Width()-len(counter)-2, 0, counter, core.ColorGray)

	y := 2
	for i, opt := range page.options {
		radio := "○"
		if opt.selected(settings) {
			radio = "◉"
		}
		dst.DrawTextColored(2, y, radio, core.ColorWhite)
		dst.DrawTextColored(4, y, opt.label, core.ColorWhite)
		dst.DrawTextColored(4, y+1, opt.description, core.ColorSkyBlue)
		if i < len(page.options)-1 {
			dst.DrawHLine(2, y+2, dst.Width()-4, '─', core.ColorGray)
		}
		y += 3
	}

	dst.DrawTextColored(2, dst.Height()-1, "Main: change   Menu: next", core.ColorYellow)
}

// renderStats draws the sum histogram with one bar per sum.
func (d *Device) renderStats(dst *core.Screen) {
	stats := d.engine.Stats()
	dst.DrawTextColored(1, statusHeight, "Dice Statistics (2-12):", core.ColorCyan)

	maxCount := 0
	for sum := dice.MinSum; sum <= dice.MaxSum; sum++ {
		maxCount = core.Max(maxCount, stats.Count(sum))
	}

	const labelW = 12
	barW := dst.Width() - labelW - 2
	for i, share := range stats.Distribution(d.Settings().Mode) {
		y := statusHeight + 1 + i
		count := stats.Count(share.Sum)
		dst.DrawTextColored(1, y, fmt.Sprintf("%2d: %d", share.Sum, count), core.ColorWhite)

		if maxCount > 0 && count > 0 {
			n := core.Max(count*barW/maxCount, 1)
			dst.DrawHLine(labelW, y, n, '█', core.ColorGold)
		}
		// Expected share, scaled to the tallest observed bar.
		if maxCount > 0 && stats.Total() > 0 {
			exp := int(share.Expected * float64(stats.Total()) * float64(barW) / float64(maxCount))
			if exp > 0 && exp <= barW {
				dst.SetColored(labelW+exp-1, y, '│', core.ColorSkyBlue)
			}
		}
	}

	dst.DrawTextColored(1, statusHeight+dice.NumSums+1, fmt.Sprintf("Total: %d", stats.Total()), core.ColorGray)
}

// renderSleep draws the dark sleep screen.
func (d *Device) renderSleep(dst *core.Screen) {
	h := dst.Height() / 2
	dst.DrawTextCentered(h-1, "z Z z", core.ColorGray)
	dst.DrawTextCentered(h+1, "Press any button to wake", core.ColorGray)
}

// EventLabel names the event die outcome of a roll, or "" when the variant
// has no event die.
func EventLabel(variant dice.GameVariant, face int) string {
	if face < dice.MinFace || face > dice.MaxFace {
		return ""
	}
	switch variant {
	case dice.VariantCitiesAndKnights:
		switch face {
		case 4:
			return "castle blue"
		case 5:
			return "castle gold"
		case 6:
			return "castle green"
		default:
			return "ship"
		}
	case dice.VariantTradersAndBarbarians:
		switch colorDieColors[face] {
		case core.ColorGreen:
			return "green"
		case core.ColorGold:
			return "gold"
		default:
			return "purple"
		}
	}
	return ""
}
