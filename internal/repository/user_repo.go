package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/podstore/podstore/internal/models"
)

// UserRepository handles data access for store accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns the user with the given email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `
		SELECT id, email, name, password_hash, is_admin, created_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `
		SELECT id, email, name, password_hash, is_admin, created_at
		FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account and fills in the creation timestamp.
func (r *UserRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (id, email, name, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	return r.db.QueryRow(q, user.ID, user.Email, user.Name, user.PasswordHash, user.IsAdmin).
		Scan(&user.CreatedAt)
}
