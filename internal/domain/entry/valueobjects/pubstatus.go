package valueobjects

type PubStatus string

const (
	PubStatusDraft     PubStatus = "DRAFT"
	PubStatusPublished PubStatus = "PUBLISHED"
	PubStatusPending   PubStatus = "PENDING"
	PubStatusScheduled PubStatus = "SCHEDULED"
)

var pubStatusTransitions = map[PubStatus][]PubStatus{
	PubStatusDraft: {
		PubStatusPending,
		PubStatusPublished,
		PubStatusScheduled,
	},
	PubStatusPending: {
		PubStatusDraft,
		PubStatusPublished,
		PubStatusScheduled,
	},
	PubStatusScheduled: {
		PubStatusDraft,
		PubStatusPublished,
	},
	PubStatusPublished: {
		PubStatusDraft,
	},
}

func (s PubStatus) String() string {
	return string(s)
}

func (s PubStatus) IsValid() bool {
	_, ok := pubStatusTransitions[s]
	return ok
}

func (s PubStatus) CanTransitionTo(next PubStatus) bool {
	for _, allowed := range pubStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
