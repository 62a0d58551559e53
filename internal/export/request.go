// Package export serialises a palette for the render service and saves the
// bundle it returns.
package export

import (
	"maps"

	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	"github.com/alexisbeaulieu97/colorterm/internal/store"
)

// Request is the render service payload. Colors maps every role of the target to
// its rgba() string.
type Request struct {
	GenerateMode schema.Target     `json:"generateMode" yaml:"generateMode" validate:"required,target_schema"`
	Colors       map[string]string `json:"colors" yaml:"colors" validate:"required,min=1,dive,required"`
}

// NewRequest builds a request from a target and its role mapping. The mapping is
// copied so later edits do not leak into an in-flight export.
func NewRequest(target schema.Target, mapping map[string]string) Request {
	return Request{
		GenerateMode: target,
		Colors:       maps.Clone(mapping),
	}
}

// FromStore snapshots the store's target and mapping.
func FromStore(s *store.Store) (Request, error) {
	mapping, err := s.Mapping()
	if err != nil {
		return Request{}, err
	}
	return NewRequest(s.Target(), mapping), nil
}

// DefaultFilename is used when the service does not name its attachment.
func (r Request) DefaultFilename() string {
	return "colorterm-" + string(r.GenerateMode) + ".zip"
}
