//go:build ignore
// +build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	schemaPath := flag.String("schema", "scripts/schema.sql", "path to the schema file")
	seedPath := flag.String("seed", "", "optional path to a seed data file, e.g. scripts/seed.sql")
	flag.Parse()

	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("📡 Connecting to database...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("✅ Connected to database successfully!")
	fmt.Println()

	if err := execFile(ctx, conn, *schemaPath); err != nil {
		fmt.Printf("❌ Failed to apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Database schema applied!")

	if *seedPath != "" {
		if err := execFile(ctx, conn, *seedPath); err != nil {
			fmt.Printf("❌ Failed to load seed data: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seed data loaded!")
	}
	fmt.Println()

	fmt.Println("🔍 Verifying database setup...")
	for _, table := range []string{"profiles", "interest_items", "user_interest_items", "user_preferences"} {
		var count int
		if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			fmt.Printf("⚠️  Warning: Could not count %s: %v\n", table, err)
			continue
		}
		fmt.Printf("   📦 %-20s %d rows\n", table, count)
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Start the local server: go run ./cmd/server")
	fmt.Println("  2. Run the integration tests: DATABASE_URL=... go test ./internal/services/database/...")
}

func execFile(ctx context.Context, conn *pgx.Conn, path string) error {
	fmt.Printf("📖 Executing %s...\n", path)
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if _, err := conn.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("failed to execute %s: %w", path, err)
	}
	return nil
}
