package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tradesman-handy-server/models"
)

// BookingService owns the booking lifecycle: creation, quoting, status
// transitions and scheduling. Every mutation is checked against the lifecycle
// table and guarded by the booking's version column, so two tradesman actions
// racing on the same row cannot silently overwrite each other.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// CreateBookingInput carries the client-supplied fields for a new booking
type CreateBookingInput struct {
	Title                 string
	Description           string
	Source                models.BookingSource
	TradesmanID           string
	Location              string
	ServiceType           *string
	HousingAssociationRef *string
	PreferredDate         *time.Time
}

// Create validates the referenced tradesman and persists a new booking with
// status pending.
func (s *BookingService) Create(input CreateBookingInput, clientID string) (*models.Booking, error) {
	var tradesman models.User
	if err := s.db.First(&tradesman, "id = ?", input.TradesmanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradesmanNotFound
		}
		return nil, fmt.Errorf("lookup tradesman: %w", err)
	}
	if !tradesman.IsTradesman() {
		return nil, ErrNotTradesman
	}

	booking := models.Booking{
		Title:                 input.Title,
		Description:           input.Description,
		Source:                input.Source,
		Status:                models.BookingStatusPending,
		ClientID:              clientID,
		TradesmanID:           &input.TradesmanID,
		Location:              input.Location,
		ServiceType:           input.ServiceType,
		HousingAssociationRef: input.HousingAssociationRef,
		PreferredDate:         input.PreferredDate,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return s.FindOne(booking.ID)
}

// SubmitQuote sets the quoted price and proposed date on a pending booking and
// moves it to quoted. The lookup is scoped to (id, tradesmanId); a mismatch
// surfaces as not found.
func (s *BookingService) SubmitQuote(id, tradesmanID string, price float64, scheduledDate *time.Time) (*models.Booking, error) {
	booking, err := s.findScoped(id, tradesmanID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(models.BookingStatusQuoted) {
		return nil, ErrIllegalTransition
	}

	updates := map[string]interface{}{
		"status":         models.BookingStatusQuoted,
		"quoted_price":   price,
		"scheduled_date": scheduledDate,
	}
	if err := s.applyVersioned(booking, updates); err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// UpdateStatus transitions a booking scoped to (id, tradesmanId) to the given
// status, optionally updating the quoted price. Illegal lifecycle transitions
// are rejected.
func (s *BookingService) UpdateStatus(id, tradesmanID string, status models.BookingStatus, quotedPrice *float64) (*models.Booking, error) {
	booking, err := s.findScoped(id, tradesmanID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(status) {
		return nil, ErrIllegalTransition
	}

	updates := map[string]interface{}{"status": status}
	if quotedPrice != nil {
		updates["quoted_price"] = *quotedPrice
	}
	if err := s.applyVersioned(booking, updates); err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// UpdateSchedule overwrites the scheduled visit date on a booking scoped to
// (id, tradesmanId). The status is left untouched.
func (s *BookingService) UpdateSchedule(id, tradesmanID string, scheduledDate *time.Time) (*models.Booking, error) {
	booking, err := s.findScoped(id, tradesmanID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"scheduled_date": scheduledDate}
	if err := s.applyVersioned(booking, updates); err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// CancelByClient lets the requesting client cancel their own booking. The
// lookup is scoped to (id, clientId) so one client cannot cancel another's
// booking.
func (s *BookingService) CancelByClient(id, clientID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.First(&booking, "id = ? AND client_id = ?", id, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lookup booking: %w", err)
	}

	if !booking.CanTransitionTo(models.BookingStatusCancelled) {
		return nil, ErrIllegalTransition
	}

	updates := map[string]interface{}{"status": models.BookingStatusCancelled}
	if err := s.applyVersioned(&booking, updates); err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// FindOne returns a booking with its client and tradesman summaries
func (s *BookingService) FindOne(id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("Client").
		Preload("Tradesman").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	return &booking, nil
}

// FindAllForTradesman lists a tradesman's bookings, soonest scheduled visit
// first (unscheduled last), newest created first within the same date.
func (s *BookingService) FindAllForTradesman(tradesmanID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Client").
		Where("tradesman_id = ?", tradesmanID).
		Order("scheduled_date ASC NULLS LAST").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list tradesman bookings: %w", err)
	}
	return bookings, nil
}

// FindAllForClient lists a client's bookings
func (s *BookingService) FindAllForClient(clientID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Client").
		Preload("Tradesman").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list client bookings: %w", err)
	}
	return bookings, nil
}

// DeleteAll removes every booking row. Development maintenance only.
func (s *BookingService) DeleteAll() error {
	return s.db.Exec("DELETE FROM bookings").Error
}

// ResetTable drops and recreates the bookings table. Development maintenance
// only.
func (s *BookingService) ResetTable() error {
	if err := s.db.Migrator().DropTable(&models.Booking{}); err != nil {
		return err
	}
	return s.db.AutoMigrate(&models.Booking{})
}

// findScoped loads a booking by (id, tradesmanId). An authorization mismatch
// intentionally surfaces as not found, so callers cannot probe for foreign
// booking ids.
func (s *BookingService) findScoped(id, tradesmanID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.First(&booking, "id = ? AND tradesman_id = ?", id, tradesmanID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	return &booking, nil
}

// applyVersioned writes the updates only if the row still carries the version
// the booking was read at, bumping the version in the same statement. Zero
// rows affected means a concurrent writer got there first.
func (s *BookingService) applyVersioned(booking *models.Booking, updates map[string]interface{}) error {
	updates["version"] = booking.Version + 1

	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND version = ?", booking.ID, booking.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleBooking
	}
	return nil
}
