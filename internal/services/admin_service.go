package services

import (
	"context"
	"time"

	"bulletinboard/internal/models"
)

// AdminService bypasses ownership: no edit token is checked on any of
// its operations. The HTTP layer gates it behind basic auth instead.
type AdminService struct {
	Ads *AdService
}

// ListAds returns everything, optionally narrowed to one status. Soft
// deleted ads show up here and nowhere else.
func (s *AdminService) ListAds(ctx context.Context, status *models.AdStatus) ([]models.AdResponse, error) {
	if status != nil {
		return s.Ads.GetAdsByStatus(ctx, *status)
	}
	return s.Ads.GetAllAds(ctx)
}

// ForceStatus moves an ad to any status regardless of its current one.
func (s *AdminService) ForceStatus(ctx context.Context, id int64, status models.AdStatus) (models.AdResponse, error) {
	ad, err := s.Ads.Ads.GetAdByID(ctx, id)
	if err != nil {
		return models.AdResponse{}, err
	}
	ad.Status = status
	ad.UpdatedAt = time.Now()
	updated, err := s.Ads.Ads.UpdateAd(ctx, ad)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.Ads.toResponse(ctx, updated, false)
}

// DeleteAd is the moderation delete: the row is kept for audit and only
// flips to the deleted status. The owner paths purge for real.
func (s *AdminService) DeleteAd(ctx context.Context, id int64) error {
	_, err := s.ForceStatus(ctx, id, models.StatusDeleted)
	return err
}
