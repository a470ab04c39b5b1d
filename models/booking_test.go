package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{
		"pending", "quoted", "accepted", "rejected", "in_progress", "completed", "cancelled",
	} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, err := ParseStatus("confirmed")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestParseSource(t *testing.T) {
	source, err := ParseSource("housing_association")
	assert.NoError(t, err)
	assert.Equal(t, BookingSourceHousingAssociation, source)

	_, err = ParseSource("web")
	assert.Error(t, err)
}

func TestLifecycleTransitions(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusQuoted},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusQuoted, BookingStatusAccepted},
		{BookingStatusQuoted, BookingStatusRejected},
		{BookingStatusQuoted, BookingStatusCancelled},
		{BookingStatusAccepted, BookingStatusInProgress},
		{BookingStatusAccepted, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCompleted},
		{BookingStatusInProgress, BookingStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusAccepted},
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusQuoted, BookingStatusInProgress},
		{BookingStatusAccepted, BookingStatusCompleted},
		{BookingStatusCompleted, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusInProgress},
		{BookingStatusRejected, BookingStatusQuoted},
		{BookingStatusCancelled, BookingStatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())

	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusQuoted.IsTerminal())
	assert.False(t, BookingStatusAccepted.IsTerminal())
	assert.False(t, BookingStatusInProgress.IsTerminal())
}

func TestBookingBeforeCreateDefaults(t *testing.T) {
	b := Booking{Title: "Leak Fix", ClientID: "c1"}
	err := b.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, BookingStatusPending, b.Status)
	assert.Equal(t, BookingSourceLocal, b.Source)
	assert.Equal(t, 1, b.Version)

	// Explicit values survive the hook
	b2 := Booking{ID: "fixed-id", Status: BookingStatusQuoted, Source: BookingSourceHousingAssociation, Version: 3}
	err = b2.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, "fixed-id", b2.ID)
	assert.Equal(t, BookingStatusQuoted, b2.Status)
	assert.Equal(t, BookingSourceHousingAssociation, b2.Source)
	assert.Equal(t, 3, b2.Version)
}

func TestUserHelpers(t *testing.T) {
	u := User{FirstName: "John", LastName: "Smith", IsTradesmen: true}
	assert.True(t, u.IsTradesman())
	assert.Equal(t, "John Smith", u.FullName())

	err := u.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
}
