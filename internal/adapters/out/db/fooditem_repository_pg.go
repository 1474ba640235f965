// internal/adapters/out/db/fooditem_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	fooddom "foodhall/internal/domain/fooditem"
)

// FoodItemRepositoryPG implements fooditem.Repository on Postgres.
//
// Table:
//
//	CREATE TABLE food_items (
//	  id          TEXT PRIMARY KEY,
//	  name        TEXT NOT NULL,
//	  description TEXT NOT NULL DEFAULT '',
//	  price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
//	  category    TEXT NOT NULL DEFAULT '',
//	  image_url   TEXT NOT NULL,
//	  created_at  TIMESTAMPTZ NOT NULL
//	);
type FoodItemRepositoryPG struct {
	DB *sql.DB
}

func NewFoodItemRepositoryPG(db *sql.DB) *FoodItemRepositoryPG {
	return &FoodItemRepositoryPG{DB: db}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *FoodItemRepositoryPG) List(ctx context.Context) ([]fooddom.FoodItem, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("fooditem_repository_pg: db is nil")
	}

	const q = `
SELECT id, name, description, price, category, image_url, created_at
FROM food_items
ORDER BY created_at ASC, id ASC
`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fooddom.FoodItem
	for rows.Next() {
		it, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodItemRepositoryPG) GetByID(ctx context.Context, id string) (fooddom.FoodItem, error) {
	if r == nil || r.DB == nil {
		return fooddom.FoodItem{}, errors.New("fooditem_repository_pg: db is nil")
	}

	const q = `
SELECT id, name, description, price, category, image_url, created_at
FROM food_items
WHERE id = $1
`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	it, err := scanFoodItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fooddom.FoodItem{}, fooddom.ErrNotFound
		}
		return fooddom.FoodItem{}, err
	}
	return it, nil
}

func (r *FoodItemRepositoryPG) Create(ctx context.Context, item fooddom.FoodItem) (fooddom.FoodItem, error) {
	if r == nil || r.DB == nil {
		return fooddom.FoodItem{}, errors.New("fooditem_repository_pg: db is nil")
	}

	const q = `
INSERT INTO food_items (id, name, description, price, category, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, description, price, category, image_url, created_at
`
	row := r.DB.QueryRowContext(ctx, q,
		strings.TrimSpace(item.ID),
		strings.TrimSpace(item.Name),
		strings.TrimSpace(item.Description),
		item.Price,
		strings.TrimSpace(item.Category),
		strings.TrimSpace(item.ImageURL),
		item.CreatedAt.UTC(),
	)

	out, err := scanFoodItem(row)
	if err != nil {
		if isUniqueViolation(err) {
			return fooddom.FoodItem{}, fooddom.ErrConflict
		}
		return fooddom.FoodItem{}, err
	}
	return out, nil
}

func (r *FoodItemRepositoryPG) Delete(ctx context.Context, id string) error {
	if r == nil || r.DB == nil {
		return errors.New("fooditem_repository_pg: db is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM food_items WHERE id = $1`,
		strings.TrimSpace(id),
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return fooddom.ErrNotFound
	}
	return nil
}

// -----------------------------------------
// helpers
// -----------------------------------------

func scanFoodItem(s rowScanner) (fooddom.FoodItem, error) {
	var (
		idNS, nameNS, descNS, categoryNS, urlNS sql.NullString
		price                                   float64
		createdAt                               time.Time
	)

	if err := s.Scan(&idNS, &nameNS, &descNS, &price, &categoryNS, &urlNS, &createdAt); err != nil {
		return fooddom.FoodItem{}, err
	}

	return fooddom.FoodItem{
		ID:          strings.TrimSpace(idNS.String),
		Name:        strings.TrimSpace(nameNS.String),
		Description: descNS.String,
		Price:       price,
		Category:    strings.TrimSpace(categoryNS.String),
		ImageURL:    strings.TrimSpace(urlNS.String),
		CreatedAt:   createdAt.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
