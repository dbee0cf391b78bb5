package mock

import "github.com/lithoslabs/evidence"

var _ evidence.TextLayerService = (*TextLayerService)(nil)

// TextLayerService is a mock implementation of evidence.TextLayerService.
type TextLayerService struct {
	ParseFn func(data []byte) ([]*evidence.Page, error)
}

func (s *TextLayerService) Parse(data []byte) ([]*evidence.Page, error) {
	return s.ParseFn(data)
}
