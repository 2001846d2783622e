package postgres

import (
	"context"
	"database/sql"

	"weddingrsvp/internal/domain"
)

// Column names follow the original store schema (nom, hebergement,
// herbergement_nombre, link_music, ...); only the Go side uses English names.
const invitationColumns = `id, nom, type, token_hash, regime, allergie, hebergement, herbergement_nombre, link_music, url, confirmed_at, created_at, updated_at`

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitation (nom, type, token_hash, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.Name, string(inv.Type), inv.TokenHash, inv.URL, inv.CreatedAt, inv.UpdatedAt).
		Scan(&inv.ID)
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitation WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitation WHERE token_hash = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, tokenHash))
}

func (r *invitationRepository) ListAll(ctx context.Context) ([]*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitation ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := []*domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// SaveResponse overwrites the answer fields of the invitation and its guests
// in one transaction. Last write wins; there is no version check.
func (r *invitationRepository) SaveResponse(ctx context.Context, inv *domain.Invitation, guests []*domain.Guest) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count sql.NullInt64
	if inv.AccommodationCount != nil {
		count = sql.NullInt64{Int64: int64(*inv.AccommodationCount), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE invitation
		SET regime = $2, allergie = $3, hebergement = $4, herbergement_nombre = $5,
		    link_music = $6, confirmed_at = $7, updated_at = $8
		WHERE id = $1
	`, inv.ID, inv.Regime, inv.Allergy, inv.Accommodation.NullBool(), count, inv.Music, inv.ConfirmedAt, inv.UpdatedAt)
	if err != nil {
		return err
	}

	for _, g := range guests {
		_, err = tx.ExecContext(ctx, `
			UPDATE invites
			SET mairie = $3, cocktail = $4, chateau = $5, brunch = $6, autorisation_ia = $7, updated_at = $8
			WHERE id = $1 AND fk_invitation = $2
		`, g.ID, inv.ID, g.Mairie.NullBool(), g.Cocktail.NullBool(), g.Chateau.NullBool(), g.Brunch, g.AIConsent.NullBool(), g.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *invitationRepository) scanOne(row rowScanner) (*domain.Invitation, error) {
	inv, err := scanInvitation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var (
		typ           string
		regime        sql.NullString
		allergy       sql.NullString
		accommodation sql.NullBool
		count         sql.NullInt64
		music         sql.NullString
		url           sql.NullString
		confirmedAt   sql.NullTime
	)
	err := row.Scan(&inv.ID, &inv.Name, &typ, &inv.TokenHash, &regime, &allergy,
		&accommodation, &count, &music, &url, &confirmedAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.Type = domain.InvitationType(typ)
	inv.Regime = regime.String
	inv.Allergy = allergy.String
	inv.Accommodation = domain.AnswerFromNullBool(accommodation)
	if count.Valid {
		n := int(count.Int64)
		inv.AccommodationCount = &n
	}
	inv.Music = music.String
	inv.URL = url.String
	if confirmedAt.Valid {
		t := confirmedAt.Time
		inv.ConfirmedAt = &t
	}
	return inv, nil
}
