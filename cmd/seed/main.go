// seed inserts a demo user with a handful of links into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/infrastructure/postgres"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type linkSpec struct {
	title    string
	url      string
	visible  bool
	position int
}

var links = []linkSpec{
	{"My website", "https://example.com", true, 0},
	{"Blog", "https://example.com/blog", true, 1},
	{"GitHub", "https://github.com/seed", true, 2},
	{"Old portfolio", "https://example.com/old", false, 3},
	{"Newsletter", "https://example.com/news", true, 10},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := postgres.Migrate(dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	passwordHash, err := domain.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert the demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, domain.UsernameFromEmail(seedEmail), seedEmail, passwordHash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, spec := range links {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM links WHERE user_id = $1 AND title = $2)`,
			userID, spec.title,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("check link %q: %v", spec.title, err)
		}
		if exists {
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO links (user_id, title, url, visible, "position")
			VALUES ($1, $2, $3, $4, $5)`,
			userID, spec.title, spec.url, spec.visible, spec.position,
		)
		if err != nil {
			log.Fatalf("insert link %q: %v", spec.title, err)
		}
		inserted++
	}

	if inserted > 0 {
		_, err = pool.Exec(ctx,
			`UPDATE users SET number_of_links = number_of_links + $2 WHERE id = $1`,
			userID, inserted,
		)
		if err != nil {
			log.Fatalf("update link count: %v", err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s\n", seedEmail)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Username:      %s\n", domain.UsernameFromEmail(seedEmail))
	fmt.Printf("  Links created: %d  (skipped %d already existing)\n", inserted, len(links)-inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/v1/user/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list your links:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...   # token from the login response")
	fmt.Println("    curl -s http://localhost:8080/api/v1/link/all -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — the public page (no auth, hidden links included):")
	fmt.Println()
	fmt.Printf("    curl -s http://localhost:8080/api/v1/link/user/%s\n", domain.UsernameFromEmail(seedEmail))
}
