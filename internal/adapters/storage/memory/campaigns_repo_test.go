package memory

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/domain/campaigns"
)

func TestCampaignRepo_Update_KeepsConcurrentDonations(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepo()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, campaigns.DonationCampaign{
		ID:          "camp-1",
		Owner:       "owner@x.com",
		PetName:     "Milo",
		MaxDonation: 500,
		CreatedAt:   now,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// El owner lee la campaña para editarla...
	snapshot, err := repo.GetByID(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// ...y entre medio entra una donación.
	if _, err := repo.IncrementDonated(ctx, "camp-1", 50, now.Add(time.Minute)); err != nil {
		t.Fatalf("increment: %v", err)
	}

	snapshot.PetName = "Milo II"
	snapshot.UpdatedAt = now.Add(2 * time.Minute)
	if err := repo.Update(ctx, snapshot); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DonatedAmount != 50 {
		t.Fatalf("expected donated amount 50, got %v", got.DonatedAmount)
	}
	if got.PetName != "Milo II" {
		t.Fatalf("expected edited pet name, got %s", got.PetName)
	}
}

func TestCampaignRepo_Update_KeepsPausedFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepo()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, campaigns.DonationCampaign{ID: "camp-1", Owner: "owner@x.com", CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}

	snapshot, err := repo.GetByID(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := repo.SetPaused(ctx, "camp-1", true, now.Add(time.Minute)); err != nil {
		t.Fatalf("pause: %v", err)
	}

	snapshot.ShortDescription = "editada"
	if err := repo.Update(ctx, snapshot); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsPaused {
		t.Fatal("expected campaign to stay paused after update")
	}
}

func TestCampaignRepo_Update_MissingCampaign(t *testing.T) {
	repo := NewCampaignRepo()

	if err := repo.Update(context.Background(), campaigns.DonationCampaign{ID: "nope"}); err != campaigns.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
