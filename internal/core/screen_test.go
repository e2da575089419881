package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)
	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("dimensions = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetColored(3, 2, '●', ColorRed)

	c := s.GetCell(3, 2)
	if c.Rune != '●' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected red dot", c)
	}

	// Out of bounds writes are ignored and reads are blank.
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 9, 'X', ColorRed)
	if s.GetCell(-1, 0).Rune != ' ' || s.GetCell(10, 0) != blankCell {
		t.Error("out of bounds access should be blank")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 1, "Equal", ColorCyan)

	if s.Row(1) != "     Equ" {
		t.Errorf("Row(1) = %q, expected clipped text", s.Row(1))
	}
	if s.GetCell(6, 1).Color != ColorCyan {
		t.Error("text color not applied")
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "●●●", ColorDefault)
	if s.Row(0) != "    ●●●    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenFillRectAndClear(t *testing.T) {
	s := NewScreen(6, 6)
	s.FillRect(NewRect(1, 1, 3, 2), '█', ColorWhite)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inside := NewRect(1, 1, 3, 2).Contains(x, y)
			if (s.GetCell(x, y).Rune == '█') != inside {
				t.Errorf("cell (%d, %d) fill mismatch", x, y)
			}
		}
	}

	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Clear should blank the screen")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := "╭───╮\n│   │\n╰───╯"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(NewRect(0, 0, 1, 3), ColorGray)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("degenerate box should draw nothing")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawTextColored(0, 0, "Roll", ColorYellow)

	s.Resize(3, 2)
	if s.Row(0) != "Rol" {
		t.Errorf("after shrink Row(0) = %q", s.Row(0))
	}

	s.Resize(12, 6)
	if !strings.HasPrefix(s.Row(0), "Rol ") || s.GetCell(0, 0).Color != ColorYellow {
		t.Errorf("after grow Row(0) = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 12) {
		t.Error("out of range row should be spaces")
	}
}
