package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/podstore/podstore/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns every product, newest first.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	const q = `
        SELECT id, name, description, price, image_url, category, stock, created_at
        FROM products
        ORDER BY created_at DESC`

	var products []models.Product
	if err := r.db.Select(&products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	const q = `
        SELECT id, name, description, price, image_url, category, stock, created_at
        FROM products
        WHERE id = $1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and fills in the generated id and timestamp.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, description, price, image_url, category, stock)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	return r.db.QueryRowx(q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Category,
		product.Stock,
	).Scan(&product.CreatedAt)
}

// Update overwrites an existing product's editable fields.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `
        UPDATE products
        SET name = $2, description = $3, price = $4, image_url = $5, category = $6, stock = $7
        WHERE id = $1`

	res, err := r.db.Exec(q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Category,
		product.Stock,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
