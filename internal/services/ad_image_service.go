package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"bulletinboard/internal/models"
)

// ImageStorage puts image bytes somewhere reachable by URL. Implemented
// by utils.LocalStorage and utils.S3Storage.
type ImageStorage interface {
	Save(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

// UploadedFile is one decoded multipart part.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type AdImageService struct {
	Ads     AdStore
	Images  AdImageStore
	Storage ImageStorage
}

// Upload attaches files to an ad after the caller proves possession of
// the edit token. A wrong token answers the same way as a missing ad.
func (s *AdImageService) Upload(ctx context.Context, adID int64, token string, files []UploadedFile) ([]models.AdImageResponse, error) {
	ad, err := s.Ads.GetAdByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if !TokensEqual(token, ad.EditToken) {
		return nil, fmt.Errorf("%w: ad %d", models.ErrInvalidEditToken, adID)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files in request", models.ErrValidation)
	}

	position, err := s.Images.NextPosition(ctx, adID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AdImageResponse, 0, len(files))
	for _, file := range files {
		objectName := uuid.New().String() + filepath.Ext(file.Filename)
		url, err := s.Storage.Save(ctx, objectName, file.Data, file.ContentType)
		if err != nil {
			return nil, err
		}
		img, err := s.Images.CreateImage(ctx, models.AdImage{
			AdID:     adID,
			URL:      url,
			Position: position,
		})
		if err != nil {
			return nil, err
		}
		position++
		responses = append(responses, models.AdImageResponse{
			ID:       img.ID,
			URL:      img.URL,
			Position: img.Position,
		})
	}
	return responses, nil
}

// DeleteImage removes a single image from an ad, again gated on the
// edit token. The image must belong to the named ad.
func (s *AdImageService) DeleteImage(ctx context.Context, adID, imageID int64, token string) error {
	ad, err := s.Ads.GetAdByID(ctx, adID)
	if err != nil {
		return err
	}
	if !TokensEqual(token, ad.EditToken) {
		return fmt.Errorf("%w: ad %d", models.ErrInvalidEditToken, adID)
	}

	img, err := s.Images.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img.AdID != adID {
		return fmt.Errorf("%w: image %d", models.ErrImageNotFound, imageID)
	}

	if err := s.Images.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	if s.Storage != nil {
		_ = s.Storage.Remove(ctx, img.URL)
	}
	return nil
}
