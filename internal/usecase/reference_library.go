package usecase

import (
	"strings"

	"crewlink-service/internal/domain/entity"
)

// ReferenceLibrary serves the read-only reference data: manuals, passenger
// requests and help-desk FAQs
type ReferenceLibrary struct {
	manuals  []entity.Manual
	requests []entity.PassengerRequest
	faqs     []entity.FAQ
}

// NewReferenceLibrary copies the given catalogs
func NewReferenceLibrary(manuals []entity.Manual, requests []entity.PassengerRequest, faqs []entity.FAQ) *ReferenceLibrary {
	return &ReferenceLibrary{
		manuals:  append([]entity.Manual(nil), manuals...),
		requests: append([]entity.PassengerRequest(nil), requests...),
		faqs:     append([]entity.FAQ(nil), faqs...),
	}
}

// Manuals returns the manuals role may read whose title or category contains
// query, ignoring case. A blank query matches everything.
func (l *ReferenceLibrary) Manuals(role entity.Role, query string) []entity.Manual {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []entity.Manual{}
	for _, m := range l.manuals {
		if !m.Roles.Has(role) {
			continue
		}
		if query == "" ||
			strings.Contains(strings.ToLower(m.Title), query) ||
			strings.Contains(strings.ToLower(m.Category), query) {
			out = append(out, m)
		}
	}
	return out
}

// PassengerRequests returns requests with the given status; an empty status
// returns them all
func (l *ReferenceLibrary) PassengerRequests(status entity.PassengerRequestStatus) []entity.PassengerRequest {
	out := []entity.PassengerRequest{}
	for _, r := range l.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// FAQs returns the help-desk questions in catalog order
func (l *ReferenceLibrary) FAQs() []entity.FAQ {
	return append([]entity.FAQ(nil), l.faqs...)
}
