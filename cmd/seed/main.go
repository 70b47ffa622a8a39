// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"gpustock/internal/config"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/ledger"
	"gpustock/internal/infrastructure/storage/postgres"
	"gpustock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@gpustock.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	adminID := id.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, version, full_name, email, phone, role, password_hash, created_at)
		 VALUES ($1, 1, 'Administrator', $2, '', 'admin', $3, $4)`,
		adminID, adminEmail, string(hash), time.Now().UTC(),
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", adminID)
	return adminID, nil
}

// seedDemoData fills the catalogs with a small realistic dataset and
// records the opening stock through ledger supply entries so the card
// counters match the entry sums from day one.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM videocards`).Scan(&count); err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Catalogs
	nvidiaFamily := id.New()
	amdFamily := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_gpu_families (id, version, name, notes) VALUES
		 ($1, 1, 'Ada Lovelace', 'NVIDIA 2022 architecture'),
		 ($2, 1, 'RDNA 3', 'AMD chiplet architecture')`,
		nvidiaFamily, amdFamily,
	); err != nil {
		return fmt.Errorf("seed gpu families: %w", err)
	}

	rtx40 := id.New()
	rx7000 := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_gpu_series (id, version, name, gpu_family_id) VALUES
		 ($1, 1, 'GeForce RTX 40', $2),
		 ($3, 1, 'Radeon RX 7000', $4)`,
		rtx40, nvidiaFamily, rx7000, amdFamily,
	); err != nil {
		return fmt.Errorf("seed gpu series: %w", err)
	}

	ad102 := id.New()
	navi31 := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_gpus (id, version, name, gpu_series_id, tech_process, base_clock, boost_clock, shader_cores, cuda_support, release_date) VALUES
		 ($1, 1, 'AD102', $2, 5, 2235, 2520, 16384, true, '2022-10-12'),
		 ($3, 1, 'Navi 31', $4, 5, 1900, 2500, 6144, false, '2022-12-13')`,
		ad102, rtx40, navi31, rx7000,
	); err != nil {
		return fmt.Errorf("seed gpus: %w", err)
	}

	gddr6x := id.New()
	gddr6 := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_memory_types (id, version, name, description) VALUES
		 ($1, 1, 'GDDR6X', 'PAM4 signaling'),
		 ($2, 1, 'GDDR6', NULL)`,
		gddr6x, gddr6,
	); err != nil {
		return fmt.Errorf("seed memory types: %w", err)
	}

	asus := id.New()
	sapphire := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_manufacturers (id, version, name, country, website) VALUES
		 ($1, 1, 'ASUS', 'Taiwan', 'https://www.asus.com'),
		 ($2, 1, 'Sapphire', 'Hong Kong', 'https://www.sapphiretech.com')`,
		asus, sapphire,
	); err != nil {
		return fmt.Errorf("seed manufacturers: %w", err)
	}

	rogStrix := id.New()
	nitro := id.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO cat_brand_series (id, version, name, manufacturer_id) VALUES
		 ($1, 1, 'ROG Strix', $2),
		 ($3, 1, 'Nitro+', $4)`,
		rogStrix, asus, nitro, sapphire,
	); err != nil {
		return fmt.Errorf("seed brand series: %w", err)
	}

	// Cards start at zero; opening stock goes through the ledger.
	cards := []struct {
		id       id.ID
		sku      string
		series   id.ID
		gpuID    id.ID
		memType  id.ID
		memSize  int
		price    decimal.Decimal
		quantity int64
	}{
		{id.New(), "RTX4090-STRIX-OC-24G", rogStrix, ad102, gddr6x, 24, decimal.NewFromInt(1999), 12},
		{id.New(), "RX7900XTX-NITRO-24G", nitro, navi31, gddr6, 24, decimal.NewFromInt(1099), 20},
	}

	for _, card := range cards {
		if _, err := tx.Exec(ctx,
			`INSERT INTO videocards (id, version, sku, brand_series_id, gpu_id, memory_type_id,
			    memory_size, width, height, length, recommended_psu, illumination,
			    max_resolution_x, max_resolution_y, color, price, quantity)
			 VALUES ($1, 1, $2, $3, $4, $5, $6, 140, 63, 336, 850, true, 7680, 4320, 'black', $7, $8)`,
			card.id, card.sku, card.series, card.gpuID, card.memType, card.memSize, card.price, card.quantity,
		); err != nil {
			return fmt.Errorf("seed card %s: %w", card.sku, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO stock_ledger (id, user_id, videocard_id, kind, quantity, date)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id.New(), adminID, card.id, ledger.KindSupply, card.quantity, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("seed opening supply for %s: %w", card.sku, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Infow("demo data seeded", "cards", len(cards))
	return nil
}
