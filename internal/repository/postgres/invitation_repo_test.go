package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"weddingrsvp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var invitationRows = []string{"id", "nom", "type", "token_hash", "regime", "allergie", "hebergement", "herbergement_nombre", "link_music", "url", "confirmed_at", "created_at", "updated_at"}

func TestInvitationRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		inv     *domain.Invitation
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			inv: &domain.Invitation{
				Name:      "Famille Durand",
				Type:      domain.TypeFull,
				TokenHash: "abc123",
				URL:       "https://wedding.example.com/rsvp/tok",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitation \(nom, type, token_hash, url, created_at, updated_at\)`).
					WithArgs("Famille Durand", "full", "abc123", "https://wedding.example.com/rsvp/tok", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-uuid-1"))
			},
			wantID:  "inv-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			inv: &domain.Invitation{
				Name:      "Famille Martin",
				Type:      domain.TypePartialMairie,
				TokenHash: "def456",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitation`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			err = repo.Create(ctx, tt.inv)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.inv.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	confirmed := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tokenHash string
		mock      func(mock sqlmock.Sqlmock)
		want      *domain.Invitation
		wantErr   error
	}{
		{
			name:      "unanswered invitation has pending accommodation",
			tokenHash: "hash-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, nom, type, token_hash, regime, allergie, hebergement, herbergement_nombre, link_music, url, confirmed_at, created_at, updated_at FROM invitation WHERE token_hash`).
					WithArgs("hash-1").
					WillReturnRows(sqlmock.NewRows(invitationRows).
						AddRow("inv-1", "Durand", "full", "hash-1", nil, nil, nil, nil, nil, "https://x/rsvp/t", nil, created, created))
			},
			want: &domain.Invitation{
				ID:        "inv-1",
				Name:      "Durand",
				Type:      domain.TypeFull,
				TokenHash: "hash-1",
				URL:       "https://x/rsvp/t",
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
		{
			name:      "confirmed invitation with accommodation",
			tokenHash: "hash-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM invitation WHERE token_hash`).
					WithArgs("hash-2").
					WillReturnRows(sqlmock.NewRows(invitationRows).
						AddRow("inv-2", "Martin", "partial-chateau", "hash-2", "vegan", "lactose", true, int64(2), "https://music", "https://x/rsvp/u", confirmed, created, confirmed))
			},
			want: func() *domain.Invitation {
				n := 2
				c := confirmed
				return &domain.Invitation{
					ID:                 "inv-2",
					Name:               "Martin",
					Type:               domain.TypePartialChateau,
					TokenHash:          "hash-2",
					Regime:             "vegan",
					Allergy:            "lactose",
					Accommodation:      domain.AnswerYes,
					AccommodationCount: &n,
					Music:              "https://music",
					URL:                "https://x/rsvp/u",
					ConfirmedAt:        &c,
					CreatedAt:          created,
					UpdatedAt:          confirmed,
				}
			}(),
		},
		{
			name:      "not found",
			tokenHash: "hash-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM invitation WHERE token_hash`).
					WithArgs("hash-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			got, err := repo.GetByTokenHash(ctx, tt.tokenHash)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM invitation ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(invitationRows).
			AddRow("inv-1", "Durand", "full", "h1", nil, nil, nil, nil, nil, nil, nil, created, created).
			AddRow("inv-2", "Martin", "partial-mairie", "h2", nil, nil, false, nil, nil, nil, nil, created, created))

	repo := NewInvitationRepository(db)
	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "inv-1", got[0].ID)
	require.Equal(t, domain.AnswerPending, got[0].Accommodation)
	require.Equal(t, domain.AnswerNo, got[1].Accommodation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_SaveResponse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	count := 2

	inv := &domain.Invitation{
		ID:                 "inv-1",
		Regime:             "vegan",
		Allergy:            "",
		Accommodation:      domain.AnswerYes,
		AccommodationCount: &count,
		Music:              "https://music",
		ConfirmedAt:        &now,
		UpdatedAt:          now,
	}
	guests := []*domain.Guest{
		{ID: "g-1", Mairie: domain.AnswerYes, Cocktail: domain.AnswerYes, Chateau: domain.AnswerNo, Brunch: true, AIConsent: domain.AnswerYes, UpdatedAt: now},
		{ID: "g-2", Mairie: domain.AnswerNo, Cocktail: domain.AnswerNo, Chateau: domain.AnswerNo, Brunch: false, AIConsent: domain.AnswerNo, UpdatedAt: now},
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE invitation`).
			WithArgs("inv-1", "vegan", "", sql.NullBool{Bool: true, Valid: true}, sql.NullInt64{Int64: 2, Valid: true}, "https://music", &now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE invites`).
			WithArgs("g-1", "inv-1", sql.NullBool{Bool: true, Valid: true}, sql.NullBool{Bool: true, Valid: true}, sql.NullBool{Bool: false, Valid: true}, true, sql.NullBool{Bool: true, Valid: true}, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE invites`).
			WithArgs("g-2", "inv-1", sql.NullBool{Bool: false, Valid: true}, sql.NullBool{Bool: false, Valid: true}, sql.NullBool{Bool: false, Valid: true}, false, sql.NullBool{Bool: false, Valid: true}, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewInvitationRepository(db)
		require.NoError(t, repo.SaveResponse(ctx, inv, guests))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guest update failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE invitation`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE invites`).
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		repo := NewInvitationRepository(db)
		require.Error(t, repo.SaveResponse(ctx, inv, guests))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

		repo := NewInvitationRepository(db)
		require.Error(t, repo.SaveResponse(ctx, inv, guests))
	})
}
