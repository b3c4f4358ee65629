package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status]

import (
	"context"
	"database/sql"
	"log"
	"os"

	"hireprompt-backend/internal/shared/config"
	"hireprompt-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	run, ok := map[string]func(context.Context, *sql.DB) error{
		"up":     db.RunMigrations,
		"down":   db.RollbackMigration,
		"status": db.MigrationStatus,
	}[command]
	if !ok {
		log.Printf("unknown command %q (want up, down or status)", command)
		os.Exit(2)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := run(ctx, conn); err != nil {
		log.Printf("migrate %s: %v", command, err)
		os.Exit(1)
	}
}
