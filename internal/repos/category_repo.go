package repos

import (
	"marketplace/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
		SELECT category_id, category_name FROM categories
		WHERE category_name = ? LIMIT 1
	`, name)
	return c, err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
		SELECT category_id, category_name FROM categories
		ORDER BY category_name
	`)
	return out, err
}
