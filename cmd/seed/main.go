// Package main reseeds the data file with the built-in datasets.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"simrs/internal/config"
	"simrs/internal/infrastructure/storage/local"
	"simrs/internal/seed"
	"simrs/pkg/logger"
	"simrs/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	store, err := local.Open(ctx, cfg.DataPath)
	if err != nil {
		log.Fatalw("failed to open data file", "path", cfg.DataPath, "error", err)
	}
	defer store.Close()

	// Wipe before writing so a reseed never leaves a stale payload behind
	// when encoding fails partway through.
	for _, slot := range []string{seed.SlotPatients, seed.SlotInventory, seed.SlotInvoices} {
		if err := store.DeleteSlot(ctx, slot); err != nil {
			log.Fatalw("failed to wipe slot", "slot", slot, "error", err)
		}
	}

	writeSlot(ctx, store, seed.SlotPatients, seed.Patients())
	writeSlot(ctx, store, seed.SlotInventory, seed.Inventory())
	writeSlot(ctx, store, seed.SlotInvoices, seed.Invoices())

	// Pin sequences to the highest seeded numbers so new records never
	// collide with seeded identifiers.
	numbers := numerator.New(store.Sequences())
	if err := numbers.SetNextNumber(ctx, numerator.PatientConfig(), time.Now(), seed.PatientSequence); err != nil {
		log.Fatalw("failed to set patient sequence", "error", err)
	}
	invoicePeriod := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := numbers.SetNextNumber(ctx, numerator.InvoiceConfig(), invoicePeriod, seed.InvoiceSequence); err != nil {
		log.Fatalw("failed to set invoice sequence", "error", err)
	}

	log.Infow("data file seeded", "path", cfg.DataPath)
}

func writeSlot[T any](ctx context.Context, store *local.Store, slot string, items []T) {
	payload, err := json.Marshal(items)
	if err != nil {
		logger.Fatal(ctx, "failed to encode seed data", "slot", slot, "error", err)
	}
	if err := store.PutSlot(ctx, slot, payload); err != nil {
		logger.Fatal(ctx, "failed to write slot", "slot", slot, "error", err)
	}
	logger.Info(ctx, "slot seeded", "slot", slot, "records", len(items))
}
