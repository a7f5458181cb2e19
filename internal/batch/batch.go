package batch

import (
	"errors"
	"fmt"

	"github.com/planmark/siteplan-mcp/internal/geometry"
	"github.com/planmark/siteplan-mcp/internal/label"
)

// ErrSelectionTooSmall rejects selection rectangles below the minimum
// usable size before any cells are generated.
var ErrSelectionTooSmall = errors.New("selection too small: needs at least 20px in each dimension")

const minSelectionPx = 20.0

// NumberingOrder selects how house numbers walk the grid.
type NumberingOrder string

// Grid walk orders. Row-parity orders apply to 2-row grids only and fall
// back to OrderLTR otherwise.
const (
	OrderLTR           NumberingOrder = "ltr"
	OrderRTL           NumberingOrder = "rtl"
	OrderBoustrophedon NumberingOrder = "boustrophedon"
	OrderEvensOdds     NumberingOrder = "evens-odds"
	OrderOddsEvens     NumberingOrder = "odds-evens"
	OrderColLTR        NumberingOrder = "col-ltr"
	OrderColRTL        NumberingOrder = "col-rtl"
)

// ParseOrder validates a numbering order string.
func ParseOrder(s string) (NumberingOrder, error) {
	switch NumberingOrder(s) {
	case OrderLTR, OrderRTL, OrderBoustrophedon, OrderEvensOdds, OrderOddsEvens, OrderColLTR, OrderColRTL:
		return NumberingOrder(s), nil
	}
	return "", fmt.Errorf("unknown numbering order %q", s)
}

// Config describes one batch-creation request: grid shape, numbering
// scheme, label defaults, and which per-cell detections to run.
type Config struct {
	Rows                 int            `json:"rows"`
	Cols                 int            `json:"cols"`
	StartBlockNumber     int            `json:"startBlockNumber"`
	StartHouseNumber     int            `json:"startHouseNumber"`
	HouseNumberIncrement int            `json:"houseNumberIncrement"`
	CustomSequence       []int          `json:"customSequence,omitempty"`
	UseCustomSequence    bool           `json:"useCustomSequence"`
	ColumnDividers       []float64      `json:"columnDividers,omitempty"`
	RowDividers          []float64      `json:"rowDividers,omitempty"`
	Type                 label.Type     `json:"type"`
	Color                string         `json:"color,omitempty"`
	NumberingOrder       NumberingOrder `json:"numberingOrder"`
	AutoDetectColor      bool           `json:"autoDetectColor"`
	AutoDetectArea       bool           `json:"autoDetectArea"`
}

func (c Config) validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if _, err := ParseOrder(string(c.NumberingOrder)); err != nil {
		return err
	}
	if _, err := label.ParseType(string(c.Type)); err != nil {
		return err
	}
	if c.UseCustomSequence && len(c.CustomSequence) == 0 {
		return errors.New("custom sequence enabled but empty")
	}
	return nil
}

// increment returns the house-number step, defaulting to 1 so a zero-value
// config still counts upward.
func (c Config) increment() int {
	if c.HouseNumberIncrement == 0 {
		return 1
	}
	return c.HouseNumberIncrement
}

// cellIndex maps a grid position to its position in the numbering walk.
// Row-parity orders have no walk index of their own; they borrow ltr, which
// also serves custom-sequence lookups under those orders.
func (c Config) cellIndex(row, col int) int {
	order := c.NumberingOrder
	if (order == OrderEvensOdds || order == OrderOddsEvens) && c.Rows != 2 {
		order = OrderLTR
	}

	switch order {
	case OrderRTL:
		return row*c.Cols + (c.Cols - 1 - col)
	case OrderBoustrophedon:
		if row%2 == 1 {
			return row*c.Cols + (c.Cols - 1 - col)
		}
		return row*c.Cols + col
	case OrderColLTR:
		return col*c.Rows + row
	case OrderColRTL:
		return (c.Cols - 1 - col) * c.Rows + row
	default:
		return row*c.Cols + col
	}
}

// houseNumber computes the house number for a grid cell.
func (c Config) houseNumber(row, col int) int {
	index := c.cellIndex(row, col)

	if c.UseCustomSequence {
		return c.CustomSequence[index%len(c.CustomSequence)]
	}

	parity := c.NumberingOrder == OrderEvensOdds || c.NumberingOrder == OrderOddsEvens
	if parity && c.Rows == 2 {
		// Row 0 takes one parity, row 1 the other, each stepping by two
		// increments per column so the interleaved values stay disjoint.
		wantEven := (c.NumberingOrder == OrderEvensOdds) == (row == 0)
		first := c.StartHouseNumber
		if (first%2 == 0) != wantEven {
			first++
		}
		return first + col*2*c.increment()
	}

	return c.StartHouseNumber + index*c.increment()
}

// boundaryFractions expands explicit dividers to the full fraction list
// [0, d1, ..., dn-1, 1], or generates equal subdivisions when none are
// given. Dividers must lie in (0,1), be strictly increasing, and number
// exactly one fewer than the cells on that axis.
func boundaryFractions(dividers []float64, n int) ([]float64, error) {
	fractions := make([]float64, 0, n+1)
	fractions = append(fractions, 0)

	if len(dividers) == 0 {
		for i := 1; i < n; i++ {
			fractions = append(fractions, float64(i)/float64(n))
		}
		return append(fractions, 1), nil
	}

	if len(dividers) != n-1 {
		return nil, fmt.Errorf("got %d dividers for %d cells, want %d", len(dividers), n, n-1)
	}
	prev := 0.0
	for i, d := range dividers {
		if d <= 0 || d >= 1 {
			return nil, fmt.Errorf("divider %d = %v out of range (0,1)", i, d)
		}
		if d <= prev {
			return nil, fmt.Errorf("dividers must be strictly increasing, %v follows %v", d, prev)
		}
		prev = d
		fractions = append(fractions, d)
	}
	return append(fractions, 1), nil
}

// cellRect computes the image-space rectangle of one grid cell from the
// boundary fraction lists and the normalized selection rectangle.
func cellRect(sel geometry.Rect, colFracs, rowFracs []float64, row, col int) geometry.Rect {
	w := sel.Width()
	h := sel.Height()
	return geometry.Rect{
		MinX: sel.MinX + colFracs[col]*w,
		MinY: sel.MinY + rowFracs[row]*h,
		MaxX: sel.MinX + colFracs[col+1]*w,
		MaxY: sel.MinY + rowFracs[row+1]*h,
	}
}

// selectionRect normalizes two drag corners into a min/max rectangle.
func selectionRect(start, end geometry.Point) geometry.Rect {
	r := geometry.Rect{MinX: start.X, MinY: start.Y, MaxX: end.X, MaxY: end.Y}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}
