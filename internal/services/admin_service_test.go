package services

import (
	"context"
	"errors"
	"testing"

	"bulletinboard/internal/models"
)

func TestAdminForceStatus(t *testing.T) {
	env := newTestEnv()
	admin := &AdminService{Ads: env.svc}
	created := createAd(t, env, "Mountain bike", "10.0.0.1")

	resp, err := admin.ForceStatus(context.Background(), created.ID, models.StatusBlocked)
	if err != nil {
		t.Fatalf("ForceStatus: %v", err)
	}
	if resp.Status != models.StatusBlocked {
		t.Errorf("status = %s, want BLOCKED", resp.Status)
	}
	if resp.EditToken != "" {
		t.Error("admin response exposes the edit token")
	}

	active, err := env.svc.GetActiveAds(context.Background())
	if err != nil {
		t.Fatalf("GetActiveAds: %v", err)
	}
	for _, ad := range active {
		if ad.ID == created.ID {
			t.Error("blocked ad still listed as active")
		}
	}

	if _, err := admin.ForceStatus(context.Background(), 999, models.StatusBlocked); !errors.Is(err, models.ErrAdNotFound) {
		t.Errorf("unknown ad: err = %v, want ErrAdNotFound", err)
	}
}

func TestAdminDeleteIsSoft(t *testing.T) {
	env := newTestEnv()
	admin := &AdminService{Ads: env.svc}
	created := createAd(t, env, "Mountain bike", "10.0.0.1")

	if err := admin.DeleteAd(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteAd: %v", err)
	}

	// The row survives with the deleted status; only the owner paths purge.
	stored, err := env.ads.GetAdByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("row gone after admin delete: %v", err)
	}
	if stored.Status != models.StatusDeleted {
		t.Errorf("status = %s, want DELETED", stored.Status)
	}

	deleted, err := admin.ListAds(context.Background(), &stored.Status)
	if err != nil {
		t.Fatalf("ListAds: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != created.ID {
		t.Errorf("deleted listing = %v, want the soft-deleted ad", deleted)
	}
}

func TestAdminListAll(t *testing.T) {
	env := newTestEnv()
	admin := &AdminService{Ads: env.svc}
	createAd(t, env, "Mountain bike", "10.0.0.1")
	createAd(t, env, "Road bike OK", "10.0.0.1")

	ads, err := admin.ListAds(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListAds: %v", err)
	}
	if len(ads) != 2 {
		t.Errorf("listed %d ads, want 2", len(ads))
	}
}
