package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"tradesman-handy-server/config"
	"tradesman-handy-server/utils"
)

type demoUser struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	IsTradesmen bool
}

type demoBooking struct {
	Title       string
	Description string
	Location    string
	ServiceType string
	Status      string
	QuotedPrice *float64
	DaysAhead   int // scheduledDate offset from now, 0 means unscheduled
}

// seedDemoData populates the database with a couple of demo accounts and
// bookings in various lifecycle states. Intended for local development.
func seedDemoData() error {
	c := config.AppConfig.Database
	connStr := c.URL
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	passwordHash, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}

	client := demoUser{ID: uuid.NewString(), Email: "client@example.com", FirstName: "Sarah", LastName: "Connor"}
	tradesman := demoUser{ID: uuid.NewString(), Email: "plumber@example.com", FirstName: "John", LastName: "Smith", IsTradesmen: true}

	for _, u := range []demoUser{client, tradesman} {
		_, err := db.Exec(`
			INSERT INTO users (id, email, first_name, last_name, password_hash, is_tradesmen, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
			ON CONFLICT (email) DO NOTHING`,
			u.ID, u.Email, u.FirstName, u.LastName, passwordHash, u.IsTradesmen)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
		}
		log.Printf("Seeded user %s", u.Email)
	}

	price := func(v float64) *float64 { return &v }
	bookings := []demoBooking{
		{Title: "Leak Fix", Description: "Kitchen sink is leaking under the counter", Location: "12 Baker Street, London", ServiceType: "plumbing", Status: "pending"},
		{Title: "Boiler Service", Description: "Annual boiler inspection and service", Location: "3 Abbey Road, London", ServiceType: "heating", Status: "quoted", QuotedPrice: price(120), DaysAhead: 3},
		{Title: "Bathroom Refit", Description: "Replace bath with walk-in shower", Location: "27 Camden High St, London", ServiceType: "plumbing", Status: "accepted", QuotedPrice: price(2400), DaysAhead: 10},
		{Title: "Radiator Repair", Description: "Radiator in the back bedroom stays cold", Location: "5 Portobello Road, London", ServiceType: "heating", Status: "completed", QuotedPrice: price(90)},
	}

	for _, b := range bookings {
		var scheduled *time.Time
		if b.DaysAhead > 0 {
			t := time.Now().AddDate(0, 0, b.DaysAhead)
			scheduled = &t
		}
		_, err := db.Exec(`
			INSERT INTO bookings (id, title, description, source, status, quoted_price, scheduled_date,
				client_id, tradesman_id, location, service_type, version, created_at, updated_at)
			VALUES ($1, $2, $3, 'local', $4, $5, $6, $7, $8, $9, $10, 1, NOW(), NOW())`,
			uuid.NewString(), b.Title, b.Description, b.Status, b.QuotedPrice, scheduled,
			client.ID, tradesman.ID, b.Location, b.ServiceType)
		if err != nil {
			return fmt.Errorf("failed to insert booking %q: %w", b.Title, err)
		}
		log.Printf("Seeded booking %q (%s)", b.Title, b.Status)
	}

	log.Println("Demo data seeded successfully")
	return nil
}
