package postgres

import (
	"context"
	"database/sql"

	"weddingrsvp/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*domain.AdminAccount, error) {
	query := `
		SELECT id, login, password_hash, salt, created_at
		FROM admin
		WHERE login = $1
	`
	a := &domain.AdminAccount{}
	err := r.DB.QueryRowContext(ctx, query, login).
		Scan(&a.ID, &a.Login, &a.PasswordHash, &a.Salt, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
