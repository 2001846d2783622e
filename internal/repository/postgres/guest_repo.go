package postgres

import (
	"context"
	"database/sql"

	"weddingrsvp/internal/domain"
)

const guestColumns = `id, nom, fk_invitation, mairie, cocktail, chateau, brunch, autorisation_ia, created_at, updated_at`

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO invites (nom, fk_invitation, brunch, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.Name, g.InvitationID, g.Brunch, g.CreatedAt, g.UpdatedAt).
		Scan(&g.ID)
}

// ListByInvitationID returns guests in insertion order, which the display and
// the aggregation both rely on.
func (r *guestRepository) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM invites WHERE fk_invitation = $1 ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGuests(rows)
}

func (r *guestRepository) ListAll(ctx context.Context) ([]*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM invites ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGuests(rows)
}

func collectGuests(rows *sql.Rows) ([]*domain.Guest, error) {
	guests := []*domain.Guest{}
	for rows.Next() {
		g := &domain.Guest{}
		var (
			mairie    sql.NullBool
			cocktail  sql.NullBool
			chateau   sql.NullBool
			brunch    sql.NullBool
			aiConsent sql.NullBool
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.InvitationID, &mairie, &cocktail, &chateau, &brunch, &aiConsent, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Mairie = domain.AnswerFromNullBool(mairie)
		g.Cocktail = domain.AnswerFromNullBool(cocktail)
		g.Chateau = domain.AnswerFromNullBool(chateau)
		g.Brunch = brunch.Valid && brunch.Bool
		g.AIConsent = domain.AnswerFromNullBool(aiConsent)
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
