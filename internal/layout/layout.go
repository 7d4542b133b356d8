// Package layout maps a terminal width class to a grid row plan.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Class is a viewport width breakpoint, ordered narrowest to widest.
type Class int

const (
	Unknown Class = iota
	Mobile
	SM
	MD
	LG
	XL
	XXL
)

var classNames = map[Class]string{
	Unknown: "unknown",
	Mobile:  "mobile",
	SM:      "sm",
	MD:      "md",
	LG:      "lg",
	XL:      "xl",
	XXL:     "2xl",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass returns the class named s (case-insensitive).
func ParseClass(s string) (Class, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for c, name := range classNames {
		if c != Unknown && name == needle {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("unknown viewport class %q", s)
}

// ErrUnresolved means the viewport class is not known yet. Callers render
// nothing rather than zero rows.
var ErrUnresolved = errors.New("layout unresolved")

// Breakpoints are minimum widths in terminal cells for each class above
// Mobile.
type Breakpoints struct {
	SM  int `toml:"sm"`
	MD  int `toml:"md"`
	LG  int `toml:"lg"`
	XL  int `toml:"xl"`
	XXL int `toml:"2xl"`
}

// DefaultBreakpoints scales the usual 640/768/1024/1280/1536 px breakpoints
// to cell widths.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{SM: 64, MD: 80, LG: 100, XL: 128, XXL: 154}
}

// Validate requires strictly increasing positive breakpoints.
func (b Breakpoints) Validate() error {
	steps := []int{b.SM, b.MD, b.LG, b.XL, b.XXL}
	if steps[0] <= 0 {
		return fmt.Errorf("breakpoint sm must be positive, got %d", steps[0])
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] <= steps[i-1] {
			return fmt.Errorf("breakpoints must be strictly increasing: %v", steps)
		}
	}
	return nil
}

// Classify returns the class for a terminal width; Unknown before the first
// size report.
func (b Breakpoints) Classify(width int) Class {
	switch {
	case width <= 0:
		return Unknown
	case width >= b.XXL:
		return XXL
	case width >= b.XL:
		return XL
	case width >= b.LG:
		return LG
	case width >= b.MD:
		return MD
	case width >= b.SM:
		return SM
	default:
		return Mobile
	}
}

// Plan is the row layout for a number of items.
type Plan struct {
	Rows   int
	PerRow int
}

// PerRow returns the items per row for c.
func PerRow(c Class) (int, error) {
	switch c {
	case Mobile:
		return 1, nil
	case SM, MD, LG:
		return 2, nil
	case XL, XXL:
		return 3, nil
	case Unknown:
		return 0, ErrUnresolved
	default:
		// Wider than anything named.
		return 3, nil
	}
}

// Compute plans total items for class c.
func Compute(total int, c Class) (Plan, error) {
	perRow, err := PerRow(c)
	if err != nil {
		return Plan{}, fmt.Errorf("plan %d items: %w", total, err)
	}
	total = max(total, 0)
	return Plan{Rows: (total + perRow - 1) / perRow, PerRow: perRow}, nil
}

// RowOf returns the row that holds item index.
func RowOf(index int64, perRow int) int {
	if perRow <= 0 || index < 0 {
		return 0
	}
	return int(index / int64(perRow))
}

// Items returns the item range [first, end) covered by row within total.
func (p Plan) Items(row, total int) (first, end int) {
	first = row * p.PerRow
	end = min(first+p.PerRow, total)
	return first, max(end, first)
}
