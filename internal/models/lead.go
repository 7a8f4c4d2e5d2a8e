package models

// LeadType distinguishes the two customer inquiry forms.
type LeadType string

// Lead types.
const (
	LeadFinancing LeadType = "financing"
	LeadSell      LeadType = "sell"
)

// Valid reports whether t is a known lead type.
func (t LeadType) Valid() bool {
	return t == LeadFinancing || t == LeadSell
}

// LeadStatus is the follow-up state of a customer inquiry.
type LeadStatus string

// Lead statuses. A lead starts as new and only ever moves forward:
// new → contacted. closed is a valid terminal state reachable by future
// admin tooling but no current operation transitions into it.
const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadClosed    LeadStatus = "closed"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadClosed:
		return true
	}
	return false
}

// Lead represents one customer inquiry captured from a financing or
// trade-in/sell form. Everything except Status is immutable once created.
type Lead struct {
	ID            string     `json:"id"`
	Type          LeadType   `json:"type"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	City          string     `json:"city,omitempty"`
	Details       string     `json:"details"` // human-readable composition of the form fields
	Status        LeadStatus `json:"status"`
	Date          int64      `json:"date"` // epoch milliseconds
}
