package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/verdantclub/ClubWheelBot_Go/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 5, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Spin Accounts
	fmt.Println("--- Spin Accounts ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, username, available_spins, total_spins_used, total_chips_earned FROM spin_accounts ORDER BY user_id")
	if err != nil {
		log.Printf("Failed to query spin accounts: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, username string
			var available, used, chips int
			if err := rows.Scan(&id, &username, &available, &used, &chips); err != nil {
				log.Printf("Failed to scan account: %v", err)
			}
			fmt.Printf("ID: %s, Username: %s, Available: %d, Used: %d, Chips: %d\n", id, username, available, used, chips)
		}
	}

	// Dump Pending Spin Events
	fmt.Println("\n--- Pending Spin Events ---")
	rows, err = dbPool.Query(ctx, "SELECT event_id, user_id, spin_number, reward_label, chip_value, status FROM spin_events WHERE status = 'pending' ORDER BY created_at")
	if err != nil {
		log.Printf("Failed to query spin events: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var eventID, userID, label, status string
			var spinNumber, chips int
			if err := rows.Scan(&eventID, &userID, &spinNumber, &label, &chips, &status); err != nil {
				log.Printf("Failed to scan event: %v", err)
			}
			fmt.Printf("Event: %s, User: %s, Spin: %d, Reward: %s, Chips: %d, Status: %s\n", eventID, userID, spinNumber, label, chips, status)
		}
	}

	// Dump Transfer Requests
	fmt.Println("\n--- Transfer Requests ---")
	rows, err = dbPool.Query(ctx, "SELECT request_id, user_id, direction, amount, status, resolved_by FROM transfer_requests ORDER BY created_at")
	if err != nil {
		log.Printf("Failed to query transfer requests: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var requestID, userID, direction, status, resolvedBy string
			var amount float64
			if err := rows.Scan(&requestID, &userID, &direction, &amount, &status, &resolvedBy); err != nil {
				log.Printf("Failed to scan transfer: %v", err)
			}
			fmt.Printf("Request: %s, User: %s, Direction: %s, Amount: %.2f, Status: %s, ResolvedBy: %s\n", requestID, userID, direction, amount, status, resolvedBy)
		}
	}
}
