package xhtml

import (
	"fmt"

	"golang.org/x/net/html/atom"
)

// emitter turns nested calls into balanced sink events: every element is
// opened and closed by the same call so no path can leave it open.
type emitter struct {
	sink Sink
}

func (e *emitter) element(tag atom.Atom, attrs Attrs, body func() error) error {
	if !vocabulary[tag] {
		return fmt.Errorf("%w: element %q outside of vocabulary", ErrInvariant, tag)
	}
	if err := e.sink.Open(tag, attrs); err != nil {
		return &DestinationError{Err: err}
	}
	if body != nil {
		if err := body(); err != nil {
			return err
		}
	}
	if err := e.sink.Close(tag); err != nil {
		return &DestinationError{Err: err}
	}
	return nil
}

// empty emits element without content.
func (e *emitter) empty(tag atom.Atom, attrs Attrs) error {
	return e.element(tag, attrs, nil)
}

// text emits character data, empty strings produce no event.
func (e *emitter) text(s string) error {
	if s == "" {
		return nil
	}
	if err := e.sink.Text(s); err != nil {
		return &DestinationError{Err: err}
	}
	return nil
}
