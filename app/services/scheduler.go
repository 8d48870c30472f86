package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 1:00 AM (01:00)
			if now.Hour() == 1 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [01:00]...")

				ExpireContracts(db, now)
				MarkOverdueFees(db, now)
				RolloverRentFees(db, now)

				// Upcoming-rent reminders go out on the first day of the month
				if now.Day() == 1 {
					SendPaymentNotifications(db, now)
				}
				SendOverdueNotifications(db)
			}
		}
	}()
}
