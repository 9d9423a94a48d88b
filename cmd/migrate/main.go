// Command migrate manages the parcel ledger schema for deployments using the
// postgres ledger backend. The xlsx backend needs no migrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
)

func usage() {
	fmt.Println("Usage: migrate [-dir path] up|down|steps N|version")
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "db/migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: failed to load config: %v", err)
	}

	m, err := migrate.New("file://"+*dir, cfg.Ledger.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if flag.NArg() < 1 {
		usage()
	}

	switch flag.Arg(0) {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: up failed: %v", err)
		}
		log.Println("migrate: parcel ledger schema is current")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: down failed: %v", err)
		}
		log.Println("migrate: parcel ledger schema reverted")

	case "steps":
		if flag.NArg() < 2 {
			log.Fatal("migrate: steps requires a number argument")
		}
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("migrate: invalid steps argument: %v", err)
		}
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: steps failed: %v", err)
		}
		log.Printf("migrate: applied %d migration steps", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("migrate: failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		usage()
	}
}
