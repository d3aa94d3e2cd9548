package performance

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func encodeCategories(categories []Category) ([]byte, error) {
	if categories == nil {
		categories = []Category{}
	}
	return json.Marshal(categories)
}

func decodeCategories(raw []byte) ([]Category, error) {
	categories := []Category{}
	if len(raw) == 0 {
		return categories, nil
	}
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}
