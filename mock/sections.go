package mock

import "github.com/lithoslabs/evidence"

var _ evidence.SectionService = (*SectionService)(nil)

// SectionService is a mock implementation of evidence.SectionService.
type SectionService struct {
	SectionsFn    func(html string) ([]*evidence.Section, error)
	CompanyInfoFn func(html string) (*evidence.CompanyInfo, error)
}

func (s *SectionService) Sections(html string) ([]*evidence.Section, error) {
	return s.SectionsFn(html)
}

func (s *SectionService) CompanyInfo(html string) (*evidence.CompanyInfo, error) {
	return s.CompanyInfoFn(html)
}
