package batch

import (
	"context"
	"image"
	"sync"

	"github.com/planmark/siteplan-mcp/internal/extract"
	"github.com/planmark/siteplan-mcp/internal/geometry"
	"github.com/planmark/siteplan-mcp/internal/label"
)

// Sampler computes the representative fill color of a polygon region.
// It matches imaging.AverageColor.
type Sampler func(img image.Image, polygon []geometry.Point) (string, error)

// Planner turns a selection rectangle and grid config into a batch of
// labels, optionally filling per-cell color and area from the image.
type Planner struct {
	Sampler   Sampler
	Extractor *extract.Extractor
}

// NewPlanner wires a planner with its detection collaborators. Either may
// be nil when the corresponding auto-detection is never requested.
func NewPlanner(sampler Sampler, extractor *extract.Extractor) *Planner {
	return &Planner{Sampler: sampler, Extractor: extractor}
}

// cellResult carries the detections for one cell back from its worker.
type cellResult struct {
	color   string
	hasArea bool
	area    float64
}

// Plan generates rows x cols labels over the selection rectangle spanned
// by start and end.
//
// Label creation is all-or-nothing: validation failures return before any
// label exists. Per-cell color sampling and area extraction run
// concurrently and are best effort; a failed detection leaves that one
// cell's optional attribute at its fallback (the configured color, or no
// area) without failing the batch.
func (p *Planner) Plan(ctx context.Context, img image.Image, cfg Config, start, end geometry.Point) ([]label.Label, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sel := selectionRect(start, end)
	if sel.Width() < minSelectionPx || sel.Height() < minSelectionPx {
		return nil, ErrSelectionTooSmall
	}

	colFracs, err := boundaryFractions(cfg.ColumnDividers, cfg.Cols)
	if err != nil {
		return nil, err
	}
	rowFracs, err := boundaryFractions(cfg.RowDividers, cfg.Rows)
	if err != nil {
		return nil, err
	}

	labels := make([]label.Label, 0, cfg.Rows*cfg.Cols)
	cells := make([]geometry.Rect, 0, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			cell := cellRect(sel, colFracs, rowFracs, row, col)
			l := label.New(cfg.Type, []geometry.Point{
				{X: cell.MinX, Y: cell.MinY},
				{X: cell.MaxX, Y: cell.MinY},
				{X: cell.MaxX, Y: cell.MaxY},
				{X: cell.MinX, Y: cell.MaxY},
			})
			l.BlockNumber = cfg.StartBlockNumber
			l.HouseNumber = cfg.houseNumber(row, col)
			l.Color = cfg.Color

			labels = append(labels, l)
			cells = append(cells, cell)
		}
	}

	if (cfg.AutoDetectColor || cfg.AutoDetectArea) && img != nil {
		p.detect(ctx, img, cfg, labels, cells)
	}

	return labels, nil
}

// detect runs the per-cell detections concurrently. Each worker writes
// only its own slot of results, so no locking is needed.
func (p *Planner) detect(ctx context.Context, img image.Image, cfg Config, labels []label.Label, cells []geometry.Rect) {
	results := make([]cellResult, len(labels))

	var wg sync.WaitGroup
	for i := range labels {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			polygon := geometry.OpenRing(labels[i].Points)
			if cfg.AutoDetectColor && p.Sampler != nil {
				if hex, err := p.Sampler(img, polygon); err == nil {
					results[i].color = hex
				}
			}
			if cfg.AutoDetectArea && p.Extractor != nil {
				v, found, err := p.Extractor.Area(ctx, img, polygon, labels[i].HouseNumber)
				if err == nil && found {
					results[i].hasArea = true
					results[i].area = v
				}
			}
		}(i)
	}
	wg.Wait()

	for i := range labels {
		if results[i].color != "" {
			labels[i].Color = results[i].color
		}
		if results[i].hasArea {
			area := results[i].area
			labels[i].Area = &area
		}
	}
}
