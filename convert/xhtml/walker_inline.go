package xhtml

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"dxc/css"
	"dxc/docx"
)

// tabs have no layout in markup, four non breaking spaces stand for one
var tabSubstitute = strings.Repeat("\u00a0", 4)

// bookmark Word maintains for the last edit position
const lastEditBookmark = "_GoBack"

func (s *renderState) inlines(content []docx.Inline, paraStyle string) error {
	for i := range content {
		in := &content[i]
		switch in.Kind {
		case docx.InlineRun:
			if err := s.run(in.Run, paraStyle); err != nil {
				return err
			}
		case docx.InlineBookmark:
			if in.Bookmark.Name == "" || in.Bookmark.Name == lastEditBookmark {
				continue
			}
			if err := s.out.empty(atom.A, s.res.attrs(atom.A, nil, nil).With(atom.Id, in.Bookmark.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *renderState) run(run *docx.Run, paraStyle string) error {
	if run.IsEmpty() {
		return s.out.empty(atom.Br, s.res.attrs(atom.Br, nil, nil))
	}

	var classes []string
	if paraStyle != "" {
		classes = append(classes, css.ClassName(paraStyle))
	}
	owner := s.res.style(paraStyle)
	if run.StyleID != "" {
		classes = append(classes, css.ClassName(run.StyleID))
		if st := s.res.style(run.StyleID); st != nil {
			owner = st
		} else {
			s.log.Debug("Unknown character style ignored", zap.String("style", run.StyleID))
		}
	}
	var direct css.Properties
	if !run.Props.IsZero() {
		direct = runCSS(&run.Props)
	}
	// text goes into span only when run carries presentation of its own,
	// regardless of how much of it ends up in style attribute
	node := s.res.nodeStyle(atom.Span, owner, direct, len(classes) > 0)
	wrap := node != nil
	var attrs Attrs
	if wrap {
		attrs = s.res.attrs(atom.Span, classes, node)
	}

	content := func() error {
		for i := range run.Content {
			if err := s.runItem(&run.Content[i], attrs, wrap); err != nil {
				return err
			}
		}
		return nil
	}
	if run.Href != "" {
		return s.out.element(atom.A, s.res.attrs(atom.A, nil, nil).With(atom.Href, run.Href), content)
	}
	return content()
}

func (s *renderState) runItem(item *docx.RunItem, attrs Attrs, wrap bool) error {
	switch item.Kind {
	case docx.RunText:
		if item.Text == "" {
			return nil
		}
		if !wrap {
			return s.out.text(item.Text)
		}
		return s.out.element(atom.Span, attrs, func() error { return s.out.text(item.Text) })
	case docx.RunTab:
		if s.para != nil && s.para.Tabs == nil {
			return s.out.element(atom.Span, s.res.attrs(atom.Span, nil, nil), func() error { return s.out.text(tabSubstitute) })
		}
		return s.out.text(tabSubstitute)
	case docx.RunBreak:
		return s.out.empty(atom.Br, s.res.attrs(atom.Br, nil, nil))
	case docx.RunImage:
		return s.image(item.Image)
	default:
		s.log.Debug("Unknown run content ignored", zap.String("kind", string(item.Kind)))
		return nil
	}
}

// image emits picture, pictures whose source could not be resolved are
// skipped.
func (s *renderState) image(img *docx.Image) error {
	if img == nil {
		return nil
	}
	var src string
	switch {
	case img.Name != "":
		item, ok := s.opts.Media.Get(img.Name)
		if !ok {
			s.log.Debug("Embedded picture skipped", zap.String("name", img.Name))
			return nil
		}
		src = s.opts.Resolver.Resolve(item)
	case img.Link != "":
		src = img.Link
	}
	if src == "" {
		s.log.Debug("Picture without source skipped")
		return nil
	}

	style := imageStyle(img)
	if img.Style != "" {
		if shape, err := css.ParseInline(img.Style); err != nil {
			s.log.Debug("Unable to parse picture shape style", zap.String("style", img.Style), zap.Error(err))
		} else {
			for _, name := range []string{"width", "height"} {
				if v, ok := shape.Get(name); ok {
					style.Set(name, v)
				}
			}
		}
	}
	attrs := s.res.attrs(atom.Img, nil, style).With(atom.Src, src).With(atom.Alt, img.Alt)
	return s.out.empty(atom.Img, attrs)
}
