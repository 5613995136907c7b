package services

import (
	"context"
	"fmt"
	"time"

	"bulletinboard/internal/models"
)

// AdStore is what the lifecycle manager needs from ad persistence.
// *repositories.AdRepository satisfies it.
type AdStore interface {
	CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	GetAdByID(ctx context.Context, id int64) (models.Ad, error)
	GetAdByEditToken(ctx context.Context, token string) (models.Ad, error)
	UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	DeleteAd(ctx context.Context, id int64) error
	ListAds(ctx context.Context) ([]models.Ad, error)
	ListAdsByStatus(ctx context.Context, status models.AdStatus) ([]models.Ad, error)
	ListAdsByCategoryID(ctx context.Context, categoryID int64) ([]models.Ad, error)
	ListAdsByUserID(ctx context.Context, userID int64) ([]models.Ad, error)
	SearchAds(ctx context.Context, req models.AdSearchRequest) ([]models.Ad, error)
	CountAds(ctx context.Context, req models.AdSearchRequest) (int64, error)
}

type AdImageStore interface {
	CreateImage(ctx context.Context, img models.AdImage) (models.AdImage, error)
	GetImageByID(ctx context.Context, id int64) (models.AdImage, error)
	ListByAdID(ctx context.Context, adID int64) ([]models.AdImage, error)
	ListByAdIDs(ctx context.Context, adIDs []int64) (map[int64][]models.AdImage, error)
	NextPosition(ctx context.Context, adID int64) (int, error)
	DeleteImage(ctx context.Context, id int64) error
	DeleteByAdID(ctx context.Context, adID int64) error
}

type CategoryStore interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type UserStore interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// AdService orchestrates the ad lifecycle: admission control on create,
// possession checks on the token paths, patch updates, hard deletes with
// image cascade, and response assembly.
type AdService struct {
	Ads        AdStore
	Images     AdImageStore
	Categories CategoryStore
	Users      UserStore
	Gate       *AntiSpamGate
	Storage    ImageStorage
	Names      *NameCache
}

func (s *AdService) CreateAd(ctx context.Context, req models.AdCreateRequest, clientIP string) (models.AdResponse, error) {
	if err := s.Gate.Check(ctx, req.Title, req.Description, clientIP); err != nil {
		return models.AdResponse{}, err
	}
	if req.Price < 0 {
		return models.AdResponse{}, fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	}
	if req.CategoryID == 0 {
		return models.AdResponse{}, fmt.Errorf("%w: category_id is required", models.ErrValidation)
	}

	exists, err := s.Categories.ExistsByID(ctx, req.CategoryID)
	if err != nil {
		return models.AdResponse{}, err
	}
	if !exists {
		return models.AdResponse{}, fmt.Errorf("%w: category %d", models.ErrCategoryNotFound, req.CategoryID)
	}

	token, err := GenerateEditToken()
	if err != nil {
		return models.AdResponse{}, err
	}

	now := time.Now()
	ad := models.Ad{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedIP:   clientIP,
		Area:        req.Area,
		PricePeriod: req.PricePeriod,
		EditToken:   token,
	}

	saved, err := s.Ads.CreateAd(ctx, ad)
	if err != nil {
		return models.AdResponse{}, err
	}

	// The one place besides the token lookup itself where the secret goes
	// out. The image list is empty by construction.
	resp, err := s.toResponse(ctx, saved, true)
	if err != nil {
		return models.AdResponse{}, err
	}
	resp.Images = []models.AdImageResponse{}
	return resp, nil
}

// GetAdByID does not filter by status; listings decide what is public.
func (s *AdService) GetAdByID(ctx context.Context, id int64) (models.AdResponse, error) {
	ad, err := s.Ads.GetAdByID(ctx, id)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.toResponse(ctx, ad, false)
}

func (s *AdService) GetAdByEditToken(ctx context.Context, token string) (models.AdResponse, error) {
	ad, err := s.Ads.GetAdByEditToken(ctx, token)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.toResponse(ctx, ad, true)
}

func (s *AdService) UpdateAd(ctx context.Context, id int64, req models.AdUpdateRequest) (models.AdResponse, error) {
	ad, err := s.Ads.GetAdByID(ctx, id)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.applyUpdate(ctx, ad, req)
}

func (s *AdService) UpdateAdByEditToken(ctx context.Context, token string, req models.AdUpdateRequest) (models.AdResponse, error) {
	ad, err := s.Ads.GetAdByEditToken(ctx, token)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.applyUpdate(ctx, ad, req)
}

// applyUpdate is the patch core: nil fields leave stored values alone,
// updated_at moves regardless of whether anything changed.
func (s *AdService) applyUpdate(ctx context.Context, ad models.Ad, req models.AdUpdateRequest) (models.AdResponse, error) {
	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return models.AdResponse{}, fmt.Errorf("%w: price must not be negative", models.ErrValidation)
		}
		ad.Price = *req.Price
	}
	if req.CategoryID != nil {
		exists, err := s.Categories.ExistsByID(ctx, *req.CategoryID)
		if err != nil {
			return models.AdResponse{}, err
		}
		if !exists {
			return models.AdResponse{}, fmt.Errorf("%w: category %d", models.ErrCategoryNotFound, *req.CategoryID)
		}
		ad.CategoryID = *req.CategoryID
	}
	if req.Status != nil {
		ad.Status = *req.Status
	}
	if req.Area != nil {
		ad.Area = req.Area
	}
	if req.PricePeriod != nil {
		ad.PricePeriod = req.PricePeriod
	}
	ad.UpdatedAt = time.Now()

	updated, err := s.Ads.UpdateAd(ctx, ad)
	if err != nil {
		return models.AdResponse{}, err
	}
	return s.toResponse(ctx, updated, false)
}

// DeleteAd is the owner-path hard delete: image rows go first, stored
// objects are cleaned up best effort, then the ad row itself.
func (s *AdService) DeleteAd(ctx context.Context, id int64) error {
	ad, err := s.Ads.GetAdByID(ctx, id)
	if err != nil {
		return err
	}
	return s.removeAd(ctx, ad)
}

func (s *AdService) DeleteAdByEditToken(ctx context.Context, token string) error {
	ad, err := s.Ads.GetAdByEditToken(ctx, token)
	if err != nil {
		return err
	}
	return s.removeAd(ctx, ad)
}

func (s *AdService) removeAd(ctx context.Context, ad models.Ad) error {
	images, err := s.Images.ListByAdID(ctx, ad.ID)
	if err != nil {
		return err
	}
	if err := s.Images.DeleteByAdID(ctx, ad.ID); err != nil {
		return err
	}
	if s.Storage != nil {
		// Rows are authoritative; a stray object in storage is not worth
		// failing the delete over.
		for _, img := range images {
			_ = s.Storage.Remove(ctx, img.URL)
		}
	}
	return s.Ads.DeleteAd(ctx, ad.ID)
}

func (s *AdService) GetAllAds(ctx context.Context) ([]models.AdResponse, error) {
	ads, err := s.Ads.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, ads)
}

// GetAdsByStatus takes a typed status: the enum is closed, so there is no
// referent to existence-check.
func (s *AdService) GetAdsByStatus(ctx context.Context, status models.AdStatus) ([]models.AdResponse, error) {
	ads, err := s.Ads.ListAdsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, ads)
}

func (s *AdService) GetAdsByCategoryID(ctx context.Context, categoryID int64) ([]models.AdResponse, error) {
	exists, err := s.Categories.ExistsByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: category %d", models.ErrCategoryNotFound, categoryID)
	}
	ads, err := s.Ads.ListAdsByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, ads)
}

func (s *AdService) GetAdsByUserID(ctx context.Context, userID int64) ([]models.AdResponse, error) {
	exists, err := s.Users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", models.ErrUserNotFound, userID)
	}
	ads, err := s.Ads.ListAdsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, ads)
}

func (s *AdService) GetActiveAds(ctx context.Context) ([]models.AdResponse, error) {
	return s.GetAdsByStatus(ctx, models.StatusActive)
}

func (s *AdService) SearchAds(ctx context.Context, req models.AdSearchRequest) (models.PageResponse, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = 20
	}

	ads, err := s.Ads.SearchAds(ctx, req)
	if err != nil {
		return models.PageResponse{}, err
	}
	total, err := s.Ads.CountAds(ctx, req)
	if err != nil {
		return models.PageResponse{}, err
	}

	content, err := s.toResponses(ctx, ads)
	if err != nil {
		return models.PageResponse{}, err
	}
	return models.NewPageResponse(content, req.Page, req.Size, total), nil
}

// ----------------- response assembly -----------------

func (s *AdService) toResponse(ctx context.Context, ad models.Ad, withToken bool) (models.AdResponse, error) {
	responses, err := s.assemble(ctx, []models.Ad{ad})
	if err != nil {
		return models.AdResponse{}, err
	}
	resp := responses[0]
	if withToken {
		resp.EditToken = ad.EditToken
	}
	return resp, nil
}

func (s *AdService) toResponses(ctx context.Context, ads []models.Ad) ([]models.AdResponse, error) {
	return s.assemble(ctx, ads)
}

// assemble denormalizes category/user names and attaches ordered images
// with one lookup per unique id set, not one per row.
func (s *AdService) assemble(ctx context.Context, ads []models.Ad) ([]models.AdResponse, error) {
	responses := make([]models.AdResponse, 0, len(ads))
	if len(ads) == 0 {
		return responses, nil
	}

	var (
		adIDs       = make([]int64, 0, len(ads))
		categoryIDs []int64
		userIDs     []int64
		seenCat     = make(map[int64]struct{})
		seenUser    = make(map[int64]struct{})
	)
	for _, ad := range ads {
		adIDs = append(adIDs, ad.ID)
		if _, ok := seenCat[ad.CategoryID]; !ok {
			seenCat[ad.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, ad.CategoryID)
		}
		if ad.UserID != nil {
			if _, ok := seenUser[*ad.UserID]; !ok {
				seenUser[*ad.UserID] = struct{}{}
				userIDs = append(userIDs, *ad.UserID)
			}
		}
	}

	categoryNames, err := s.Names.Lookup(ctx, "category_name", categoryIDs, s.Categories.GetNamesByIDs)
	if err != nil {
		return nil, err
	}
	userNames, err := s.Names.Lookup(ctx, "user_name", userIDs, s.Users.GetNamesByIDs)
	if err != nil {
		return nil, err
	}
	imagesByAd, err := s.Images.ListByAdIDs(ctx, adIDs)
	if err != nil {
		return nil, err
	}

	for _, ad := range ads {
		resp := models.AdResponse{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			Price:       ad.Price,
			CategoryID:  ad.CategoryID,
			UserID:      ad.UserID,
			Status:      ad.Status,
			CreatedAt:   ad.CreatedAt,
			UpdatedAt:   ad.UpdatedAt,
			Area:        ad.Area,
			PricePeriod: ad.PricePeriod,
			Images:      []models.AdImageResponse{},
		}
		if name, ok := categoryNames[ad.CategoryID]; ok {
			resp.CategoryName = &name
		}
		if ad.UserID != nil {
			if name, ok := userNames[*ad.UserID]; ok {
				resp.UserName = &name
			}
		}
		for _, img := range imagesByAd[ad.ID] {
			resp.Images = append(resp.Images, models.AdImageResponse{
				ID:       img.ID,
				URL:      img.URL,
				Position: img.Position,
			})
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
