package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Database.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("Migrating session database at %s\n", path)

	ran, err := db.RunMigrations(conn)
	for _, name := range ran {
		fmt.Printf("✓ Migration %s completed successfully\n", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if len(ran) == 0 {
		fmt.Println("Nothing to migrate")
		return
	}
	fmt.Println("\nAll migrations completed successfully!")
}
