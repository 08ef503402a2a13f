package proposal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/test_utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	defer cleanup()
	code := m.Run()
	os.Exit(code)
}

func setupRepoTest(t *testing.T) (context.Context, Repo, int) {
	t.Helper()
	testCtx := context.Background()

	var userId int
	err := db.QueryRow(testCtx,
		`INSERT INTO users (uid, name) VALUES ($1, $2) RETURNING id`,
		uuid.NewString(), "Test Electrician").Scan(&userId)
	require.NoError(t, err)

	return testCtx, NewProposalRepo(db), userId
}

func sampleProposal(now time.Time) Proposal {
	return Proposal{
		Uid:      uuid.NewString(),
		Number:   1,
		Revision: 1,
		Client: Client{
			Name:  "João da Silva",
			Phone: "11 99999-0000",
		},
		Title: "Reforma elétrica",
		Items: []Item{
			{
				ServiceID: 1,
				Name:      "Tomada nova",
				PriceType: "fixed",
				UnitPrice: decimal.RequireFromString("120.00"),
				Quantity:  decimal.NewFromInt(3),
				LineTotal: decimal.RequireFromString("360.00"),
				Position:  0,
			},
			{
				ServiceID: 2,
				Name:      "Manutenção de quadro",
				PriceType: "hourly",
				UnitPrice: decimal.RequireFromString("95.00"),
				Quantity:  decimal.RequireFromString("2.5"),
				LineTotal: decimal.RequireFromString("237.50"),
				Position:  1,
			},
		},
		PaymentMethods: []string{"pix", "cartão"},
		ValidityDays:   15,
		Status:         StatusDraft,
		CreatedAt:      now,
	}
}

func initialRevision(now time.Time) Revision {
	return Revision{Number: 1, Summary: "Proposal created", CreatedAt: now}
}

func TestRepoImpl_Store(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	// when
	stored, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	// then
	assert.NotZero(t, stored.ID)
	assert.Equal(t, 1, stored.Number)

	loaded, err := repo.GetByUid(testCtx, userId, stored.Uid)
	require.NoError(t, err)
	assert.Equal(t, "Reforma elétrica", loaded.Title)
	assert.Equal(t, "João da Silva", loaded.Client.Name)
	assert.Equal(t, []string{"pix", "cartão"}, loaded.PaymentMethods)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, "Tomada nova", loaded.Items[0].Name)
	assert.True(t, loaded.Items[1].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("597.50")))
}

func TestRepoImpl_Store_AssignsSequentialNumbersPerUser(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	_, otherRepo, otherUserId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	first, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)
	second, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)
	other, err := otherRepo.Store(testCtx, otherUserId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	// numbering is per user, not global
	assert.Equal(t, 1, other.Number)
}

func TestRepoImpl_GetAll(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	draft := sampleProposal(now)
	_, err := repo.Store(testCtx, userId, draft, initialRevision(now))
	require.NoError(t, err)

	sent := sampleProposal(now)
	sent.Status = StatusSent
	_, err = repo.Store(testCtx, userId, sent, initialRevision(now))
	require.NoError(t, err)

	t.Run("returns all proposals newest number first", func(t *testing.T) {
		all, err := repo.GetAll(testCtx, userId, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, 2, all[0].Number)
		assert.Equal(t, 1, all[1].Number)
		assert.Len(t, all[0].Items, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		sentOnly, err := repo.GetAll(testCtx, userId, StatusSent)
		require.NoError(t, err)
		require.Len(t, sentOnly, 1)
		assert.Equal(t, StatusSent, sentOnly[0].Status)
	})
}

func TestRepoImpl_GetByUid_NotFound(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)

	_, err := repo.GetByUid(testCtx, userId, uuid.NewString())

	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestRepoImpl_GetByUid_IsScopedToUser(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	_, _, otherUserId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	stored, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	_, err = repo.GetByUid(testCtx, otherUserId, stored.Uid)

	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestRepoImpl_UpdateWithRevision(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	stored, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	updated := stored
	updated.Title = "Reforma elétrica completa"
	updated.Revision = 2
	updated.Items = []Item{
		{
			ServiceID: 1,
			Name:      "Tomada nova",
			PriceType: "fixed",
			UnitPrice: decimal.RequireFromString("120.00"),
			Quantity:  decimal.NewFromInt(5),
			LineTotal: decimal.RequireFromString("600.00"),
			Position:  0,
		},
	}
	revision := Revision{
		ProposalID: stored.ID,
		Number:     2,
		Summary:    "Updated items, title, total",
		Changes: map[string]FieldChange{
			"title": {Old: "Reforma elétrica", New: "Reforma elétrica completa"},
		},
		CreatedAt: now,
	}

	// when
	ok, err := repo.UpdateWithRevision(testCtx, userId, updated, revision)
	require.NoError(t, err)
	assert.True(t, ok)

	// then
	loaded, err := repo.GetByUid(testCtx, userId, stored.Uid)
	require.NoError(t, err)
	assert.Equal(t, "Reforma elétrica completa", loaded.Title)
	assert.Equal(t, 2, loaded.Revision)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.Items[0].Quantity.Equal(decimal.NewFromInt(5)))

	revisions, err := repo.ListRevisions(testCtx, userId, stored.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, "Updated items, title, total", revisions[1].Summary)
	assert.Equal(t, "Reforma elétrica", revisions[1].Changes["title"].Old)
}

func TestRepoImpl_UpdateWithRevision_UnknownProposal(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)

	missing := sampleProposal(time.Now())
	missing.ID = 99999

	ok, err := repo.UpdateWithRevision(testCtx, userId, missing, Revision{ProposalID: 99999, Number: 2})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepoImpl_UpdateStatusWithRevision(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	stored, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	sentAt := now.Add(time.Hour)
	updated := stored
	updated.Status = StatusSent
	updated.SentAt = &sentAt
	updated.Revision = 2
	revision := Revision{
		ProposalID: stored.ID,
		Number:     2,
		Summary:    "Status changed from draft to sent",
		Changes:    map[string]FieldChange{"status": {Old: "draft", New: "sent"}},
		CreatedAt:  now,
	}

	// when
	ok, err := repo.UpdateStatusWithRevision(testCtx, userId, updated, revision)
	require.NoError(t, err)
	assert.True(t, ok)

	// then
	loaded, err := repo.GetByUid(testCtx, userId, stored.Uid)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, loaded.Status)
	require.NotNil(t, loaded.SentAt)
	assert.True(t, loaded.SentAt.Equal(sentAt))
	// the content update path was not touched
	assert.Equal(t, "Reforma elétrica", loaded.Title)
	require.Len(t, loaded.Items, 2)
}

func TestRepoImpl_Delete(t *testing.T) {
	testCtx, repo, userId := setupRepoTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	stored, err := repo.Store(testCtx, userId, sampleProposal(now), initialRevision(now))
	require.NoError(t, err)

	// when
	ok, err := repo.Delete(testCtx, userId, stored.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// then items and revisions are gone with the proposal
	_, err = repo.GetByUid(testCtx, userId, stored.Uid)
	assert.ErrorIs(t, err, ErrProposalNotFound)

	var itemCount int
	err = db.QueryRow(testCtx, "SELECT COUNT(*) FROM proposal_items WHERE proposal_id = $1", stored.ID).Scan(&itemCount)
	require.NoError(t, err)
	assert.Zero(t, itemCount)
}
