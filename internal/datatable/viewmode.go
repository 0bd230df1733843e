package datatable

import (
	"fmt"
	"strings"
)

// ViewMode is how rows are laid out.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewCards
)

func (m ViewMode) String() string {
	if m == ViewCards {
		return "cards"
	}
	return "table"
}

// MobileView chooses the view mode: forced, or derived from the viewport
// width.
type MobileView int

const (
	MobileAuto MobileView = iota
	MobileTable
	MobileCards
)

func (v MobileView) String() string {
	switch v {
	case MobileTable:
		return "table"
	case MobileCards:
		return "cards"
	default:
		return "auto"
	}
}

// ParseMobileView parses "auto", "table" or "cards".
func ParseMobileView(s string) (MobileView, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MobileAuto, nil
	case "table":
		return MobileTable, nil
	case "cards", "card":
		return MobileCards, nil
	}
	return MobileAuto, fmt.Errorf("invalid view mode %q (want auto, table or cards)", s)
}

// Breakpoint is the width below which auto mode shows cards. Within
// Hysteresis cells of Width the previous mode is kept, so resizing around
// the threshold does not flicker.
type Breakpoint struct {
	Width      int
	Hysteresis int
}

// DefaultBreakpoint suits an 80-column terminal showing cards and a wide
// one showing the table.
var DefaultBreakpoint = Breakpoint{Width: 100, Hysteresis: 4}

// DeriveMode maps a viewport width to a view mode. prev is the mode
// currently shown; pass nil on the first measurement.
func DeriveMode(width int, bp Breakpoint, prev *ViewMode) ViewMode {
	h := max(bp.Hysteresis, 0)
	if prev != nil {
		switch *prev {
		case ViewCards:
			if width < bp.Width+h {
				return ViewCards
			}
			return ViewTable
		case ViewTable:
			if width >= bp.Width-h {
				return ViewTable
			}
			return ViewCards
		}
	}
	if width < bp.Width {
		return ViewCards
	}
	return ViewTable
}

// MobileView returns the configured mode selection.
func (t *Table[T]) MobileView() MobileView {
	return t.mobile
}

// SetMobileView changes the mode selection. Forced modes apply at once;
// auto waits for the next Resize.
func (t *Table[T]) SetMobileView(v MobileView) {
	t.mobile = v
	switch v {
	case MobileTable:
		t.mode = ViewTable
	case MobileCards:
		t.mode = ViewCards
	}
}

// ViewMode returns the mode currently in effect.
func (t *Table[T]) ViewMode() ViewMode {
	return t.mode
}

// Resize feeds a new viewport width. Only auto mode measures; widths <= 0
// (unknown) leave the mode unchanged.
func (t *Table[T]) Resize(width int) ViewMode {
	if t.mobile != MobileAuto || width <= 0 {
		return t.mode
	}
	var prev *ViewMode
	if t.measured {
		prev = &t.mode
	}
	t.mode = DeriveMode(width, t.breakpoint, prev)
	t.measured = true
	return t.mode
}
