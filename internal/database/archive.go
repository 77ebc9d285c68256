package database

import (
	"database/sql"
	"fmt"

	"cartscout-backend/internal/models"
)

type ArchiveQueries struct {
	db *sql.DB
}

func NewArchiveQueries(db *sql.DB) *ArchiveQueries {
	return &ArchiveQueries{db: db}
}

// CreateArchive stores a snapshot of a canonical cart under a name. Line item
// order is preserved through the position column so a restore reproduces the
// list exactly.
func (q *ArchiveQueries) CreateArchive(ownerKey, name string, cart models.NormalizedCart) (*models.ArchivedCart, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	archive := &models.ArchivedCart{
		OwnerKey:  ownerKey,
		Name:      name,
		Cart:      cart,
		ItemCount: len(cart.ProductItems) + len(cart.CategoryItems),
	}

	err = tx.QueryRow(`
		INSERT INTO archived_carts (owner_key, name, item_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, ownerKey, name, archive.ItemCount).Scan(&archive.ID, &archive.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	position := 0
	for _, item := range cart.ProductItems {
		if err := insertArchiveItem(tx, archive.ID, models.ItemTypeProduct, item.ProductID, item.Quantity, position); err != nil {
			return nil, err
		}
		position++
	}
	for _, item := range cart.CategoryItems {
		if err := insertArchiveItem(tx, archive.ID, models.ItemTypeCategory, item.CategoryID, item.Quantity, position); err != nil {
			return nil, err
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit archive: %w", err)
	}
	return archive, nil
}

func insertArchiveItem(tx *sql.Tx, archiveID int, itemType, itemID string, quantity, position int) error {
	_, err := tx.Exec(`
		INSERT INTO archived_cart_items (archived_cart_id, item_type, item_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)
	`, archiveID, itemType, itemID, quantity, position)
	if err != nil {
		return fmt.Errorf("failed to store archive item %s/%s: %w", itemType, itemID, err)
	}
	return nil
}

// ListArchives returns an owner's archives newest first, without line items.
func (q *ArchiveQueries) ListArchives(ownerKey string) ([]models.ArchivedCart, error) {
	rows, err := q.db.Query(`
		SELECT id, owner_key, name, item_count, created_at
		FROM archived_carts
		WHERE owner_key = $1
		ORDER BY created_at DESC
	`, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	archives := []models.ArchivedCart{}
	for rows.Next() {
		var archive models.ArchivedCart
		if err := rows.Scan(&archive.ID, &archive.OwnerKey, &archive.Name, &archive.ItemCount, &archive.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive: %w", err)
		}
		archives = append(archives, archive)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archives: %w", err)
	}
	return archives, nil
}

// GetArchive loads one archive with its line items. Ownership is enforced in
// the query so callers cannot read another owner's snapshots.
func (q *ArchiveQueries) GetArchive(id int, ownerKey string) (*models.ArchivedCart, error) {
	archive := &models.ArchivedCart{
		Cart: models.NormalizedCart{
			ProductItems:  []models.ProductItem{},
			CategoryItems: []models.CategoryItem{},
		},
	}
	err := q.db.QueryRow(`
		SELECT id, owner_key, name, item_count, created_at
		FROM archived_carts
		WHERE id = $1 AND owner_key = $2
	`, id, ownerKey).Scan(&archive.ID, &archive.OwnerKey, &archive.Name, &archive.ItemCount, &archive.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("archive not found")
		}
		return nil, fmt.Errorf("failed to get archive: %w", err)
	}

	rows, err := q.db.Query(`
		SELECT item_type, item_id, quantity
		FROM archived_cart_items
		WHERE archived_cart_id = $1
		ORDER BY position
	`, archive.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get archive items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemType, itemID string
		var quantity int
		if err := rows.Scan(&itemType, &itemID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan archive item: %w", err)
		}
		switch itemType {
		case models.ItemTypeProduct:
			archive.Cart.ProductItems = append(archive.Cart.ProductItems, models.ProductItem{
				ProductID: itemID,
				Quantity:  quantity,
			})
		case models.ItemTypeCategory:
			archive.Cart.CategoryItems = append(archive.Cart.CategoryItems, models.CategoryItem{
				CategoryID: itemID,
				Quantity:   quantity,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive items: %w", err)
	}
	return archive, nil
}

// DeleteArchive removes one of the owner's archives.
func (q *ArchiveQueries) DeleteArchive(id int, ownerKey string) error {
	result, err := q.db.Exec(`
		DELETE FROM archived_carts WHERE id = $1 AND owner_key = $2
	`, id, ownerKey)
	if err != nil {
		return fmt.Errorf("failed to delete archive: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted archive: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("archive not found")
	}
	return nil
}
