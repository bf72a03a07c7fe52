package entry

import vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"

// SearchCriteria selects published entries of one weblog matching every term.
type SearchCriteria struct {
	WeblogID     string
	Terms        []string
	CategoryName string
	Locale       string
	Offset       int
	Limit        int
}

// ListCriteria selects the most recent entries of a weblog.
type ListCriteria struct {
	WeblogID string
	Status   vo.PubStatus
	Limit    int
}
