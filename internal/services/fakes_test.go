package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"bulletinboard/internal/models"
)

// In-memory stores backing the service tests. They honor the same
// contracts as the SQL repositories, including the not-found sentinels.

type fakeAdStore struct {
	nextID int64
	ads    map[int64]models.Ad
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{ads: map[int64]models.Ad{}}
}

func (f *fakeAdStore) CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	f.nextID++
	ad.ID = f.nextID
	f.ads[ad.ID] = ad
	return ad, nil
}

func (f *fakeAdStore) GetAdByID(ctx context.Context, id int64) (models.Ad, error) {
	ad, ok := f.ads[id]
	if !ok {
		return models.Ad{}, fmt.Errorf("%w: id %d", models.ErrAdNotFound, id)
	}
	return ad, nil
}

func (f *fakeAdStore) GetAdByEditToken(ctx context.Context, token string) (models.Ad, error) {
	for _, ad := range f.ads {
		if ad.EditToken == token {
			return ad, nil
		}
	}
	return models.Ad{}, fmt.Errorf("%w: token", models.ErrAdNotFound)
}

func (f *fakeAdStore) UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	if _, ok := f.ads[ad.ID]; !ok {
		return models.Ad{}, fmt.Errorf("%w: id %d", models.ErrAdNotFound, ad.ID)
	}
	f.ads[ad.ID] = ad
	return ad, nil
}

func (f *fakeAdStore) DeleteAd(ctx context.Context, id int64) error {
	if _, ok := f.ads[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrAdNotFound, id)
	}
	delete(f.ads, id)
	return nil
}

func (f *fakeAdStore) all() []models.Ad {
	ads := make([]models.Ad, 0, len(f.ads))
	for _, ad := range f.ads {
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID < ads[j].ID })
	return ads
}

func (f *fakeAdStore) ListAds(ctx context.Context) ([]models.Ad, error) {
	return f.all(), nil
}

func (f *fakeAdStore) ListAdsByStatus(ctx context.Context, status models.AdStatus) ([]models.Ad, error) {
	var out []models.Ad
	for _, ad := range f.all() {
		if ad.Status == status {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f *fakeAdStore) ListAdsByCategoryID(ctx context.Context, categoryID int64) ([]models.Ad, error) {
	var out []models.Ad
	for _, ad := range f.all() {
		if ad.CategoryID == categoryID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f *fakeAdStore) ListAdsByUserID(ctx context.Context, userID int64) ([]models.Ad, error) {
	var out []models.Ad
	for _, ad := range f.all() {
		if ad.UserID != nil && *ad.UserID == userID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f *fakeAdStore) matches(ad models.Ad, req models.AdSearchRequest) bool {
	if req.Status != nil && ad.Status != *req.Status {
		return false
	}
	if req.CategoryID != nil && ad.CategoryID != *req.CategoryID {
		return false
	}
	if req.MinPrice != nil && ad.Price < *req.MinPrice {
		return false
	}
	if req.MaxPrice != nil && ad.Price > *req.MaxPrice {
		return false
	}
	return true
}

// sortHits mirrors the SQL ordering contract: price, title and updatedat
// are the recognized keys, anything else orders by creation; only an
// explicit "asc" flips the descending default.
func sortHits(hits []models.Ad, sortBy, sortDirection string) {
	less := func(a, b models.Ad) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		less = func(a, b models.Ad) bool { return a.Price < b.Price }
	case "title":
		less = func(a, b models.Ad) bool { return a.Title < b.Title }
	case "updatedat":
		less = func(a, b models.Ad) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	ascending := strings.EqualFold(strings.TrimSpace(sortDirection), "asc")
	sort.SliceStable(hits, func(i, j int) bool {
		if ascending {
			return less(hits[i], hits[j])
		}
		return less(hits[j], hits[i])
	})
}

func (f *fakeAdStore) SearchAds(ctx context.Context, req models.AdSearchRequest) ([]models.Ad, error) {
	var hits []models.Ad
	for _, ad := range f.all() {
		if f.matches(ad, req) {
			hits = append(hits, ad)
		}
	}
	sortHits(hits, req.SortBy, req.SortDirection)
	offset := req.Page * req.Size
	if offset >= len(hits) {
		return nil, nil
	}
	end := offset + req.Size
	if end > len(hits) {
		end = len(hits)
	}
	return hits[offset:end], nil
}

func (f *fakeAdStore) CountAds(ctx context.Context, req models.AdSearchRequest) (int64, error) {
	var n int64
	for _, ad := range f.ads {
		if f.matches(ad, req) {
			n++
		}
	}
	return n, nil
}

func (f *fakeAdStore) CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	for _, ad := range f.ads {
		if ad.CreatedIP == ip && ad.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakeImageStore struct {
	nextID int64
	images map[int64]models.AdImage
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: map[int64]models.AdImage{}}
}

func (f *fakeImageStore) CreateImage(ctx context.Context, img models.AdImage) (models.AdImage, error) {
	f.nextID++
	img.ID = f.nextID
	f.images[img.ID] = img
	return img, nil
}

func (f *fakeImageStore) GetImageByID(ctx context.Context, id int64) (models.AdImage, error) {
	img, ok := f.images[id]
	if !ok {
		return models.AdImage{}, fmt.Errorf("%w: id %d", models.ErrImageNotFound, id)
	}
	return img, nil
}

func (f *fakeImageStore) ListByAdID(ctx context.Context, adID int64) ([]models.AdImage, error) {
	var out []models.AdImage
	for _, img := range f.images {
		if img.AdID == adID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeImageStore) ListByAdIDs(ctx context.Context, adIDs []int64) (map[int64][]models.AdImage, error) {
	out := make(map[int64][]models.AdImage)
	for _, id := range adIDs {
		images, _ := f.ListByAdID(ctx, id)
		if len(images) > 0 {
			out[id] = images
		}
	}
	return out, nil
}

func (f *fakeImageStore) NextPosition(ctx context.Context, adID int64) (int, error) {
	next := 0
	for _, img := range f.images {
		if img.AdID == adID && img.Position >= next {
			next = img.Position + 1
		}
	}
	return next, nil
}

func (f *fakeImageStore) DeleteImage(ctx context.Context, id int64) error {
	if _, ok := f.images[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrImageNotFound, id)
	}
	delete(f.images, id)
	return nil
}

func (f *fakeImageStore) DeleteByAdID(ctx context.Context, adID int64) error {
	for id, img := range f.images {
		if img.AdID == adID {
			delete(f.images, id)
		}
	}
	return nil
}

type fakeCategoryStore struct {
	names map[int64]string
}

func (f *fakeCategoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.names[id]
	return ok, nil
}

func (f *fakeCategoryStore) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeUserStore struct {
	names map[int64]string
}

func (f *fakeUserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.names[id]
	return ok, nil
}

func (f *fakeUserStore) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeStorage struct {
	saved   []string
	removed []string
}

func (f *fakeStorage) Save(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	url := "/uploads/" + objectName
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) Remove(ctx context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

type testEnv struct {
	ads     *fakeAdStore
	images  *fakeImageStore
	storage *fakeStorage
	svc     *AdService
}

func newTestEnv() *testEnv {
	ads := newFakeAdStore()
	images := newFakeImageStore()
	storage := &fakeStorage{}
	svc := &AdService{
		Ads:    ads,
		Images: images,
		Categories: &fakeCategoryStore{names: map[int64]string{
			1: "Vehicles",
			2: "Housing",
		}},
		Users: &fakeUserStore{names: map[int64]string{
			10: "Somchai",
		}},
		Gate: &AntiSpamGate{
			MinTitleLength:       5,
			MinDescriptionLength: 10,
			MaxAdsPerHour:        5,
			Ads:                  ads,
		},
		Storage: storage,
	}
	return &testEnv{ads: ads, images: images, storage: storage, svc: svc}
}
