package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// COMPANIES & USERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			logo_url VARCHAR(500),
			public_menu_key VARCHAR(64) UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			company_id UUID REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'USER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// LOCATIONS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS location_types (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			location_type_id UUID REFERENCES location_types(id),
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// INGREDIENTS & STOCKS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS ingredient_categories (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			category_id UUID REFERENCES ingredient_categories(id),
			name VARCHAR(255) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			base_quantity DOUBLE PRECISION NOT NULL DEFAULT 1,
			base_unit VARCHAR(20) NOT NULL,
			allergens TEXT[] NOT NULL DEFAULT '{}',
			image_url VARCHAR(500),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ingredient_stocks (
			ingredient_id UUID NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			location_id UUID NOT NULL REFERENCES locations(id),
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (ingredient_id, location_id)
		)`,

		// -------------------------------
		// PREPARATIONS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS preparations (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			image_url VARCHAR(500),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS preparation_entities (
			id UUID PRIMARY KEY,
			preparation_id UUID NOT NULL REFERENCES preparations(id) ON DELETE CASCADE,
			entity_type VARCHAR(20) NOT NULL,
			entity_id UUID NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			unit VARCHAR(20) NOT NULL,
			location_id UUID REFERENCES locations(id)
		)`,
		`CREATE TABLE IF NOT EXISTS preparation_stocks (
			preparation_id UUID NOT NULL REFERENCES preparations(id) ON DELETE CASCADE,
			location_id UUID NOT NULL REFERENCES locations(id),
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (preparation_id, location_id)
		)`,

		// -------------------------------
		// MENUS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS menu_categories (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_types (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			category_id UUID REFERENCES menu_categories(id),
			type_id UUID REFERENCES menu_types(id),
			name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			image_url VARCHAR(500),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			menu_id UUID NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			entity_type VARCHAR(20) NOT NULL,
			entity_id UUID NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			unit VARCHAR(20) NOT NULL,
			location_id UUID REFERENCES locations(id)
		)`,

		// -------------------------------
		// ROOMS & TABLES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			code VARCHAR(20) NOT NULL,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tables (
			id UUID PRIMARY KEY,
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			label VARCHAR(20) NOT NULL,
			seats INT NOT NULL DEFAULT 2
		)`,

		// -------------------------------
		// ORDERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			table_id UUID REFERENCES tables(id),
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_steps (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING'
		)`,
		`CREATE TABLE IF NOT EXISTS step_menus (
			id UUID PRIMARY KEY,
			step_id UUID NOT NULL REFERENCES order_steps(id) ON DELETE CASCADE,
			menu_id UUID NOT NULL REFERENCES menus(id),
			quantity INT NOT NULL DEFAULT 1,
			service_type VARCHAR(20) NOT NULL DEFAULT 'PREP',
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			served_at TIMESTAMP NULL
		)`,

		// -------------------------------
		// LOSSES & PERISHABLES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS losses (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			entity_type VARCHAR(20) NOT NULL,
			entity_id UUID NOT NULL,
			location_id UUID NOT NULL REFERENCES locations(id),
			quantity DOUBLE PRECISION NOT NULL,
			reason VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS perishables (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			ingredient_id UUID NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			location_id UUID NOT NULL REFERENCES locations(id),
			quantity DOUBLE PRECISION NOT NULL,
			expiration_at TIMESTAMP NOT NULL,
			read_at TIMESTAMP NULL,
			expired BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// QUICK ACCESSES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS quick_accesses (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name VARCHAR(255) NOT NULL,
			icon VARCHAR(50) NOT NULL,
			color VARCHAR(20) NOT NULL,
			url_key VARCHAR(100) NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	// Databases created before the expiry sweep shipped
	expiredColumnSQL := `
		ALTER TABLE perishables
		ADD COLUMN IF NOT EXISTS expired BOOLEAN NOT NULL DEFAULT FALSE
	`
	if _, err := db.Exec(ctx, expiredColumnSQL); err != nil {
		log.Println("Note: expired column may already exist")
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
