package xhtml

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"dxc/css"
	"dxc/docx"
)

func (s *renderState) blocks(blocks []docx.Block) error {
	for i := range blocks {
		if err := s.block(&blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *renderState) block(b *docx.Block) error {
	switch b.Kind {
	case docx.BlockParagraph:
		return s.paragraph(b.Paragraph)
	case docx.BlockTable:
		return s.table(b.Table)
	case docx.BlockStructured:
		return s.out.element(atom.Div, s.res.attrs(atom.Div, nil, nil), func() error {
			return s.blocks(b.Structured.Blocks)
		})
	default:
		return fmt.Errorf("%w: unknown block kind %q", ErrInvariant, b.Kind)
	}
}

// paragraphStyle returns identifier of paragraph named style, document
// default paragraph style when paragraph does not reference one.
func (s *renderState) paragraphStyle(para *docx.Paragraph) string {
	if para.StyleID != "" {
		return para.StyleID
	}
	return s.doc.Styles.Default(docx.StyleParagraph)
}

func (s *renderState) paragraph(para *docx.Paragraph) error {
	styleID := s.paragraphStyle(para)
	owner := s.res.style(styleID)
	if owner == nil && styleID != "" {
		s.log.Debug("Unknown paragraph style ignored", zap.String("style", styleID))
	}

	tag, level, fromDirect := headingTag(&para.Props, owner)

	var classes []string
	if styleID != "" {
		classes = append(classes, css.ClassName(styleID))
	}
	if fromDirect {
		classes = append(classes, fmt.Sprintf("outlineLvl-%d", level))
	}

	var (
		ownerProps *docx.ParagraphProps
		label      string
		labelLevel *docx.Level
	)
	if owner != nil {
		ownerProps = &owner.Paragraph
	}
	direct := make(css.Properties)
	if ref, ok := docx.ListOf(&para.Props, ownerProps); ok {
		if lvl, found := s.doc.Numbering.Level(ref.NumID, ref.Level); found {
			direct.Merge(paragraphCSS(&lvl.Paragraph))
			label, _ = s.lists.Next(ref)
			labelLevel = lvl
		} else {
			s.log.Debug("Unknown list reference ignored", zap.String("num", ref.NumID), zap.Int("level", ref.Level))
		}
	}
	direct.Merge(paragraphCSS(&para.Props))
	if len(direct) == 0 {
		direct = nil
	}

	node := s.res.nodeStyle(atom.P, owner, direct, len(classes) > 0)
	attrs := s.res.attrs(tag, classes, node)

	s.para = para
	defer func() { s.para = nil }()

	return s.out.element(tag, attrs, func() error {
		if labelLevel != nil && label != "" {
			labelNode := s.res.nodeStyle(atom.Span, nil, runCSS(&labelLevel.Run), true)
			err := s.out.element(atom.Span, s.res.attrs(atom.Span, classes, labelNode), func() error {
				return s.out.text(label + " ")
			})
			if err != nil {
				return err
			}
		}
		return s.inlines(para.Content, styleID)
	})
}
