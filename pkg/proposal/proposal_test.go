package proposal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("draft moves to sent or pending only", func(t *testing.T) {
		assert.True(t, StatusDraft.CanTransitionTo(StatusSent))
		assert.True(t, StatusDraft.CanTransitionTo(StatusPending))
		assert.False(t, StatusDraft.CanTransitionTo(StatusAccepted))
		assert.False(t, StatusDraft.CanTransitionTo(StatusRejected))
	})

	t.Run("sent and pending are adjacent and both can close", func(t *testing.T) {
		assert.True(t, StatusSent.CanTransitionTo(StatusPending))
		assert.True(t, StatusPending.CanTransitionTo(StatusSent))
		assert.True(t, StatusSent.CanTransitionTo(StatusAccepted))
		assert.True(t, StatusSent.CanTransitionTo(StatusRejected))
		assert.True(t, StatusPending.CanTransitionTo(StatusAccepted))
		assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	})

	t.Run("accepted and rejected are terminal", func(t *testing.T) {
		for _, target := range []Status{StatusDraft, StatusSent, StatusPending, StatusAccepted, StatusRejected} {
			assert.False(t, StatusAccepted.CanTransitionTo(target))
			assert.False(t, StatusRejected.CanTransitionTo(target))
		}
	})

	t.Run("no status moves back to draft", func(t *testing.T) {
		for _, from := range []Status{StatusSent, StatusPending, StatusAccepted, StatusRejected} {
			assert.False(t, from.CanTransitionTo(StatusDraft))
		}
	})
}

func TestProposal_Total(t *testing.T) {
	proposal := Proposal{
		Items: []Item{
			{LineTotal: decimal.RequireFromString("120.00")},
			{LineTotal: decimal.RequireFromString("79.90")},
		},
	}
	assert.True(t, proposal.Total().Equal(decimal.RequireFromString("199.90")))
}

func TestProposal_Validate(t *testing.T) {
	valid := Proposal{
		Title:  "Instalação elétrica",
		Client: Client{Name: "João"},
		Items: []Item{
			{Name: "Tomada nova", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(120)},
		},
		ValidityDays: 15,
	}

	t.Run("accepts a complete proposal", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects missing title", func(t *testing.T) {
		proposal := valid
		proposal.Title = ""
		assert.ErrorIs(t, proposal.Validate(), ErrProposalInvalid)
	})

	t.Run("rejects missing client name", func(t *testing.T) {
		proposal := valid
		proposal.Client = Client{}
		assert.ErrorIs(t, proposal.Validate(), ErrProposalInvalid)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		proposal := valid
		proposal.Items = nil
		assert.ErrorIs(t, proposal.Validate(), ErrProposalInvalid)
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		proposal := valid
		proposal.Items = []Item{{Name: "Tomada nova", Quantity: decimal.Zero}}
		assert.ErrorIs(t, proposal.Validate(), ErrProposalInvalid)
	})
}

func TestComputeDiff(t *testing.T) {
	base := Proposal{
		Title:        "Troca de disjuntor",
		Client:       Client{Name: "Maria", Email: "maria@example.com"},
		ValidityDays: 15,
		Status:       StatusDraft,
		Items: []Item{
			{
				ServiceID: 1,
				Name:      "Troca de disjuntor",
				UnitPrice: decimal.RequireFromString("250.00"),
				Quantity:  decimal.NewFromInt(1),
				LineTotal: decimal.RequireFromString("250.00"),
			},
		},
		CreatedAt: time.Now(),
	}

	t.Run("identical proposals yield no changes", func(t *testing.T) {
		assert.Empty(t, ComputeDiff(base, base))
	})

	t.Run("records old and new value per field", func(t *testing.T) {
		changed := base
		changed.Title = "Troca de quadro"
		changed.ValidityDays = 30

		diff := ComputeDiff(base, changed)

		assert.Len(t, diff, 2)
		assert.Equal(t, FieldChange{Old: "Troca de disjuntor", New: "Troca de quadro"}, diff["title"])
		assert.Equal(t, FieldChange{Old: "15", New: "30"}, diff["validityDays"])
	})

	t.Run("item edits show up as item and total changes", func(t *testing.T) {
		changed := base
		changed.Items = append([]Item{}, base.Items...)
		changed.Items = append(changed.Items, Item{
			ServiceID: 2,
			Name:      "Aterramento",
			UnitPrice: decimal.RequireFromString("90.00"),
			Quantity:  decimal.NewFromInt(1),
			LineTotal: decimal.RequireFromString("90.00"),
		})

		diff := ComputeDiff(base, changed)

		assert.Equal(t, FieldChange{Old: "1x Troca de disjuntor", New: "1x Troca de disjuntor, 1x Aterramento"}, diff["items"])
		assert.Equal(t, FieldChange{Old: "250.00", New: "340.00"}, diff["total"])
	})

	t.Run("detects a service swap at the same price and quantity", func(t *testing.T) {
		changed := base
		changed.Items = []Item{
			{
				ServiceID: 7,
				Name:      "Revisão de quadro",
				UnitPrice: decimal.RequireFromString("250.00"),
				Quantity:  decimal.NewFromInt(1),
				LineTotal: decimal.RequireFromString("250.00"),
			},
		}

		diff := ComputeDiff(base, changed)

		assert.Len(t, diff, 1)
		assert.Equal(t, FieldChange{Old: "1x Troca de disjuntor", New: "1x Revisão de quadro"}, diff["items"])
	})
}

func TestSummarizeDiff(t *testing.T) {
	t.Run("lone status change gets a dedicated summary", func(t *testing.T) {
		changes := map[string]FieldChange{
			"status": {Old: "draft", New: "sent"},
		}
		assert.Equal(t, "Status changed from draft to sent", summarizeDiff(changes))
	})

	t.Run("field changes are listed alphabetically", func(t *testing.T) {
		changes := map[string]FieldChange{
			"title": {Old: "a", New: "b"},
			"notes": {Old: "", New: "c"},
		}
		assert.Equal(t, "Updated notes, title", summarizeDiff(changes))
	})
}
