package domain

type DecisionStatus string

const (
	StatusProposed   DecisionStatus = "Proposed"
	StatusAccepted   DecisionStatus = "Accepted"
	StatusDeprecated DecisionStatus = "Deprecated"
	StatusSuperseded DecisionStatus = "Superseded"
)

// ValidStatuses is the canonical set of accepted decision status strings.
var ValidStatuses = map[DecisionStatus]bool{
	StatusProposed:   true,
	StatusAccepted:   true,
	StatusDeprecated: true,
	StatusSuperseded: true,
}

// AllStatuses lists statuses in display order for selection forms.
var AllStatuses = []DecisionStatus{
	StatusProposed,
	StatusAccepted,
	StatusDeprecated,
	StatusSuperseded,
}
