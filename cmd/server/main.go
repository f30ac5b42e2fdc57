// Package main is the entry point for the SIMRS API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"simrs/internal/config"
	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
	"simrs/internal/domain/records"
	"simrs/internal/domain/reports"
	"simrs/internal/domain/voice"
	v1 "simrs/internal/infrastructure/http/v1"
	"simrs/internal/infrastructure/http/v1/handlers"
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
	log.Info("starting simrs server")

	// --- Durable storage ---
	// A broken data file degrades to in-memory slots: the dashboard keeps
	// working, every mutation response carries a persistence warning.
	var (
		slots   records.SlotStore
		journal records.Journal
		history handlers.JournalReader
		pinger  interface{ Ping(context.Context) error }
		numbers *numerator.Service
	)
	store, err := local.Open(ctx, cfg.DataPath)
	if err != nil {
		log.Warnw("data file unavailable, running in-memory only",
			"path", cfg.DataPath,
			"error", err,
		)
		slots = records.NewMemorySlots()
		sequences := numerator.NewMemorySequences()
		sequences.Set("RM", seed.PatientSequence)
		numbers = numerator.New(sequences)
	} else {
		defer store.Close()
		slots = store
		pinger = store
		numbers = numerator.New(store.Sequences())

		// A fresh data file gets its slots seeded below; raise the
		// sequences past the seeded numbers so the first created record
		// cannot collide with a seeded identifier.
		if err := numbers.EnsureFloor(ctx, numerator.PatientConfig(), time.Now(), seed.PatientSequence); err != nil {
			log.Fatalw("failed to bootstrap patient sequence", "error", err)
		}
		invoicePeriod := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
		if err := numbers.EnsureFloor(ctx, numerator.InvoiceConfig(), invoicePeriod, seed.InvoiceSequence); err != nil {
			log.Fatalw("failed to bootstrap invoice sequence", "error", err)
		}

		j, err := local.NewJournal(store, cfg.JournalCompressThreshold)
		if err != nil {
			log.Fatalw("failed to initialize journal", "error", err)
		}
		journal = j
		history = j
		log.Infow("data file opened", "path", cfg.DataPath)
	}

	// --- Record stores ---
	patientStore := records.Open(ctx, slots, journal, seed.SlotPatients, seed.Patients)
	inventoryStore := records.Open(ctx, slots, journal, seed.SlotInventory, seed.Inventory)
	invoiceStore := records.Open(ctx, slots, journal, seed.SlotInvoices, seed.Invoices)

	// --- Domain services ---
	patientService := patient.NewService(patientStore, numbers)
	inventoryService := inventory.NewService(inventoryStore)
	billingService := billing.NewService(invoiceStore)
	reportsService := reports.NewService(patientService, inventoryService, billingService)

	voiceTokens := voice.NewTokenService(voice.TokenConfig{
		Secret: cfg.VoiceTokenSecret,
		Issuer: "simrs",
		TTL:    cfg.VoiceTokenTTL,
	})
	voiceService := voice.NewService(voiceTokens, inventoryService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:    log,
		Store:     pinger,
		Journal:   history,
		Patients:  patientService,
		Inventory: inventoryService,
		Billing:   billingService,
		Reports:   reportsService,
		Voice:     voiceService,
		Registry:  prometheus.NewRegistry(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
