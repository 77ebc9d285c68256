package database

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS archived_carts (
			id SERIAL PRIMARY KEY,
			owner_key VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			item_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_archived_carts_owner_key ON archived_carts(owner_key);`,
		`CREATE INDEX IF NOT EXISTS idx_archived_carts_created_at ON archived_carts(created_at);`,
		`CREATE TABLE IF NOT EXISTS archived_cart_items (
			id SERIAL PRIMARY KEY,
			archived_cart_id INTEGER NOT NULL REFERENCES archived_carts(id) ON DELETE CASCADE,
			item_type VARCHAR(20) NOT NULL,
			item_id VARCHAR(100) NOT NULL,
			quantity INTEGER NOT NULL,
			position INTEGER NOT NULL,
			CONSTRAINT chk_archived_cart_items_type CHECK (item_type IN ('product', 'category')),
			CONSTRAINT chk_archived_cart_items_quantity CHECK (quantity > 0),
			CONSTRAINT uq_archived_cart_items_entity UNIQUE (archived_cart_id, item_type, item_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_archived_cart_items_cart ON archived_cart_items(archived_cart_id);`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
