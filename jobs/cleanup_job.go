package jobs

import (
	"log"
	"time"

	"tradesman-handy-server/database"
	"tradesman-handy-server/services"
)

// CleanupJob periodically removes expired refresh tokens
type CleanupJob struct {
	interval time.Duration
	stopChan chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(interval time.Duration) *CleanupJob {
	return &CleanupJob{
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("Token cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tokenService := services.NewTokenService(database.DB)
			if err := tokenService.CleanupExpiredTokens(); err != nil {
				log.Printf("Token cleanup failed: %v", err)
			}
		case <-j.stopChan:
			return
		}
	}
}
