package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusQuoted     BookingStatus = "quoted"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type BookingSource string

const (
	BookingSourceLocal              BookingSource = "local"
	BookingSourceHousingAssociation BookingSource = "housing_association"
)

// allowedTransitions is the booking lifecycle table. A status missing from the
// map (or with an empty set) is terminal.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending: {
		BookingStatusQuoted:    true,
		BookingStatusRejected:  true,
		BookingStatusCancelled: true,
	},
	BookingStatusQuoted: {
		BookingStatusAccepted:  true,
		BookingStatusRejected:  true,
		BookingStatusCancelled: true,
	},
	BookingStatusAccepted: {
		BookingStatusInProgress: true,
		BookingStatusCancelled:  true,
	},
	BookingStatusInProgress: {
		BookingStatusCompleted: true,
		BookingStatusCancelled: true,
	},
	BookingStatusRejected:  {},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// ParseStatus validates a wire-level status value
func ParseStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusQuoted, BookingStatusAccepted,
		BookingStatusRejected, BookingStatusInProgress, BookingStatusCompleted,
		BookingStatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

// ParseSource validates a wire-level source value
func ParseSource(s string) (BookingSource, error) {
	switch BookingSource(s) {
	case BookingSourceLocal, BookingSourceHousingAssociation:
		return BookingSource(s), nil
	default:
		return "", fmt.Errorf("unknown booking source: %q", s)
	}
}

// CanTransition reports whether the lifecycle allows moving from one status to
// another
func CanTransition(from, to BookingStatus) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// IsTerminal reports whether a status has no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

type Booking struct {
	ID                    string        `json:"id" gorm:"type:uuid;primaryKey"`
	Title                 string        `json:"title" gorm:"size:255;not null"`
	Description           string        `json:"description" gorm:"size:2000;not null"`
	Source                BookingSource `json:"source" gorm:"type:varchar(30);not null;default:'local';check:source IN ('local','housing_association')"`
	Status                BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','quoted','accepted','rejected','in_progress','completed','cancelled')"`
	QuotedPrice           *float64      `json:"quotedPrice" gorm:"type:decimal(10,2)"`
	ScheduledDate         *time.Time    `json:"scheduledDate"`
	PreferredDate         *time.Time    `json:"preferredDate"`
	ClientID              string        `json:"clientId" gorm:"type:uuid;not null;index"`
	TradesmanID           *string       `json:"tradesmanId" gorm:"type:uuid;index"` // Can be null until assigned
	Location              string        `json:"location" gorm:"size:500"`
	ServiceType           *string       `json:"serviceType" gorm:"size:100"`
	HousingAssociationRef *string       `json:"housingAssociationRef" gorm:"size:100"`
	Version               int           `json:"version" gorm:"not null;default:1"` // Optimistic concurrency token
	CreatedAt             time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt             time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationships; User.PasswordHash is json:"-" so preloads never leak it
	Client    *User `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Tradesman *User `json:"tradesman,omitempty" gorm:"foreignKey:TradesmanID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate is a GORM hook that assigns a uuid and the initial status
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	if b.Source == "" {
		b.Source = BookingSourceLocal
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return nil
}

// CanTransitionTo reports whether the booking may move to the given status
func (b *Booking) CanTransitionTo(to BookingStatus) bool {
	return CanTransition(b.Status, to)
}
