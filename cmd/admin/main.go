package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"superfamily/internal/config"
	"superfamily/internal/database"
)

const usage = `Super Family Admin CLI - Management commands for the Super Family API

Usage:
  admin <command> [options]

Commands:
  purge-invites   Remove expired family invite codes
  prune-logs      Remove activity log rows older than a cutoff

Examples:
  # Purge all expired invites
  admin purge-invites

  # Prune activity logs older than 90 days
  admin prune-logs --before=2160h

  # Prune with a custom timeout
  admin prune-logs --before=720h --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "purge-invites":
		runPurgeInvites(os.Args[2:])
	case "prune-logs":
		runPruneLogs(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runPurgeInvites(args []string) {
	fs := flag.NewFlagSet("purge-invites", flag.ExitOnError)

	timeoutStr := fs.String("timeout", "1m", "Timeout for the operation (e.g., 30s, 5m)")

	fs.Usage = func() {
		fmt.Println("Usage: admin purge-invites [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin purge-invites")
		fmt.Println("  admin purge-invites --timeout=5m")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel, db := connect(*timeoutStr)
	defer cancel()
	defer db.Close()

	inviteRepo := database.NewInviteRepository(db)

	start := time.Now()
	n, err := inviteRepo.DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("Purge invites failed: %v", err)
	}

	log.Printf("Purged %d expired invites in %v", n, time.Since(start))
}

func runPruneLogs(args []string) {
	fs := flag.NewFlagSet("prune-logs", flag.ExitOnError)

	beforeStr := fs.String("before", "", "Age cutoff as a duration (e.g., 720h for 30 days)")
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation (e.g., 30s, 5m)")

	fs.Usage = func() {
		fmt.Println("Usage: admin prune-logs [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin prune-logs --before=2160h")
		fmt.Println("  admin prune-logs --before=720h --timeout=5m")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *beforeStr == "" {
		fmt.Println("Error: must specify --before")
		fs.Usage()
		os.Exit(1)
	}

	before, err := time.ParseDuration(*beforeStr)
	if err != nil {
		log.Fatalf("Invalid --before format: %v", err)
	}

	ctx, cancel, db := connect(*timeoutStr)
	defer cancel()
	defer db.Close()

	logRepo := database.NewLogRepository(db)

	start := time.Now()
	n, err := logRepo.DeleteBefore(ctx, time.Now().Add(-before))
	if err != nil {
		log.Fatalf("Prune logs failed: %v", err)
	}

	log.Printf("Pruned %d activity log rows in %v", n, time.Since(start))
}

// connect loads configuration, opens the database, and builds a context with
// the given timeout.
func connect(timeoutStr string) (context.Context, context.CancelFunc, *database.DB) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return ctx, cancel, db
}
