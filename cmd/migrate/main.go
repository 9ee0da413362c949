// Command migrate manages the PostgreSQL schema.
//
//	migrate up | down | goto <version> | force <version> | version
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"servicehub/internal/config"
	"servicehub/internal/database"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	m, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no change")
			return
		}
		log.Fatal(err)
	}

	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Println("version: none")
	case err != nil:
		log.Fatal(err)
	default:
		log.Printf("version: %d dirty=%v", v, dirty)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Steps(-1)
	case "goto", "force":
		if len(args) < 2 {
			usage()
		}
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad version %q: %w", args[1], err)
		}
		if args[0] == "force" {
			return m.Force(int(v))
		}
		return m.Migrate(uint(v))
	case "version":
		return nil
	default:
		usage()
		return nil
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate up | down | goto <version> | force <version> | version")
	os.Exit(2)
}
