package client

import "time"

// Booking is the wire representation returned by the API
type Booking struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Source                string     `json:"source"`
	Status                string     `json:"status"`
	QuotedPrice           *float64   `json:"quotedPrice"`
	ScheduledDate         *time.Time `json:"scheduledDate"`
	PreferredDate         *time.Time `json:"preferredDate"`
	ClientID              string     `json:"clientId"`
	TradesmanID           *string    `json:"tradesmanId"`
	Location              string     `json:"location"`
	ServiceType           *string    `json:"serviceType"`
	HousingAssociationRef *string    `json:"housingAssociationRef"`
	Version               int        `json:"version"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`

	Client    *UserSummary `json:"client,omitempty"`
	Tradesman *UserSummary `json:"tradesman,omitempty"`
}

// UserSummary is the embedded client/tradesman view
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	IsTradesmen bool   `json:"isTradesmen"`
}

// DomainStatus is the coarser status shown in the UI. Accepted and in-progress
// bookings both count as confirmed work; rejected and cancelled both read as
// rejected.
type DomainStatus string

const (
	DomainPending   DomainStatus = "pending"
	DomainConfirmed DomainStatus = "confirmed"
	DomainCompleted DomainStatus = "completed"
	DomainRejected  DomainStatus = "rejected"
)

// DomainStatus folds the wire status into the UI-facing one. Quoted bookings
// still await the client's decision, so they stay pending.
func (b *Booking) DomainStatus() DomainStatus {
	switch b.Status {
	case "accepted", "in_progress":
		return DomainConfirmed
	case "completed":
		return DomainCompleted
	case "rejected", "cancelled":
		return DomainRejected
	default:
		return DomainPending
	}
}

// Summary holds the dashboard counters
type Summary struct {
	Pending   int
	Confirmed int
	Completed int
}

// Summarize recomputes the dashboard counters from the full booking list.
// Rejected and cancelled bookings are not counted.
func Summarize(bookings []Booking) Summary {
	var s Summary
	for i := range bookings {
		switch bookings[i].DomainStatus() {
		case DomainPending:
			s.Pending++
		case DomainConfirmed:
			s.Confirmed++
		case DomainCompleted:
			s.Completed++
		}
	}
	return s
}
