package xhtml

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"dxc/css"
	"dxc/docx"
)

type cellPos struct {
	row, col int
}

// mergeGroups describes vertically merged cells. Group is identified by
// position of its first cell.
type mergeGroups struct {
	size  map[cellPos]int
	start map[cellPos]cellPos
}

func (s *renderState) mergeGroups(t *docx.Table) mergeGroups {
	g := mergeGroups{
		size:  make(map[cellPos]int),
		start: make(map[cellPos]cellPos),
	}
	// column -> first cell of the group still open in that column
	open := make(map[int]cellPos)
	for r := range t.Rows {
		col := 0
		for c := range t.Rows[r].Cells {
			cell := &t.Rows[r].Cells[c]
			pos := cellPos{row: r, col: col}
			switch cell.VMerge {
			case docx.VMergeRestart:
				g.size[pos], open[col] = 1, pos
			case docx.VMergeContinue:
				first, ok := open[col]
				if !ok {
					s.log.Debug("Merged cell continues nothing, starting new group", zap.Int("row", r), zap.Int("column", col))
					g.size[pos], open[col] = 1, pos
					break
				}
				g.size[first]++
				g.start[pos] = first
			default:
				delete(open, col)
			}
			col += cell.Span()
		}
	}
	return g
}

// rowspan returns number of rows occupied by the cell and whether cell
// should be emitted at all.
func (g mergeGroups) rowspan(pos cellPos, cell *docx.Cell) (int, bool, error) {
	switch cell.VMerge {
	case docx.VMergeRestart, docx.VMergeContinue:
		if first, ok := g.start[pos]; ok {
			if _, ok := g.size[first]; !ok {
				return 0, false, fmt.Errorf("%w: merge group at %v lost its first cell", ErrInvariant, first)
			}
			return 0, false, nil
		}
		size, ok := g.size[pos]
		if !ok {
			return 0, false, fmt.Errorf("%w: merged cell at %v does not belong to any group", ErrInvariant, pos)
		}
		return size, true, nil
	default:
		return 1, true, nil
	}
}

// tableBorders returns table level borders: direct formatting over table
// style.
func tableBorders(owner *docx.Style, tp *docx.TableProps) [4]*docx.Border {
	var out [4]*docx.Border
	layers := []*docx.Borders{tp.Borders}
	if owner != nil {
		layers = append(layers, owner.Table.Borders)
	}
	for _, b := range layers {
		if b == nil {
			continue
		}
		for i, side := range []*docx.Border{b.Top, b.Right, b.Bottom, b.Left} {
			if out[i] == nil {
				out[i] = side
			}
		}
	}
	return out
}

var borderSides = [4]string{"top", "right", "bottom", "left"}

func (s *renderState) table(t *docx.Table) error {
	owner := s.res.style(t.StyleID)
	if owner == nil && t.StyleID != "" {
		s.log.Debug("Unknown table style ignored", zap.String("style", t.StyleID))
	}
	var classes []string
	if t.StyleID != "" {
		classes = append(classes, css.ClassName(t.StyleID))
	}

	direct := tableCSS(&t.Props)
	direct.Set("border-collapse", "collapse")
	attrs := s.res.attrs(atom.Table, classes, s.res.nodeStyle(atom.Table, owner, direct, len(classes) > 0))

	groups := s.mergeGroups(t)
	sides := tableBorders(owner, &t.Props)

	return s.out.element(atom.Table, attrs, func() error {
		for r := range t.Rows {
			row := &t.Rows[r]
			tag := atom.Tr
			if row.Header {
				tag = atom.Th
			}
			err := s.out.element(tag, s.res.attrs(tag, classes, nil), func() error {
				col := 0
				for c := range row.Cells {
					cell := &row.Cells[c]
					pos := cellPos{row: r, col: col}
					col += cell.Span()
					if err := s.cell(cell, pos, groups, owner, classes, sides); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("table row %d: %w", r, err)
			}
		}
		return nil
	})
}

func (s *renderState) cell(cell *docx.Cell, pos cellPos, groups mergeGroups, owner *docx.Style, classes []string, sides [4]*docx.Border) error {
	rows, emit, err := groups.rowspan(pos, cell)
	if err != nil || !emit {
		return err
	}

	direct := make(css.Properties)
	for i, b := range sides {
		if b.Defined() && borderStyles[b.Val] == "solid" {
			direct.Set("border-"+borderSides[i], tableBorder(b))
		}
	}
	// own cell borders win over table ones
	direct.Merge(cellCSS(&cell.Props))

	attrs := s.res.attrs(atom.Td, classes, s.res.nodeStyle(atom.Td, owner, direct, len(classes) > 0))
	if span := cell.Span(); span > 1 {
		attrs = attrs.With(atom.Colspan, strconv.Itoa(span))
	}
	if rows > 1 {
		attrs = attrs.With(atom.Rowspan, strconv.Itoa(rows))
	}
	return s.out.element(atom.Td, attrs, func() error {
		return s.blocks(cell.Blocks)
	})
}
