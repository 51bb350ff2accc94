// Command storecheck verifies that the configured todo store is reachable and
// that the todos table or collection can be read.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/features/todos"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Printf("Testing %s connection...\n", cfg.DBDriver)
	repo, store, err := todos.OpenRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s connection failed: %w", cfg.DBDriver, err)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", cfg.DBDriver, err)
	}
	fmt.Printf("✅ %s connected successfully!\n", cfg.DBDriver)

	all, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("reading todos failed: %w", err)
	}
	fmt.Printf("✅ todos readable (%d records)\n", len(all))
	return nil
}
