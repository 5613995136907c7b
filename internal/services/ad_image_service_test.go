package services

import (
	"context"
	"errors"
	"testing"

	"bulletinboard/internal/models"
)

func newImageService(env *testEnv) *AdImageService {
	return &AdImageService{Ads: env.ads, Images: env.images, Storage: env.storage}
}

func TestUploadImages(t *testing.T) {
	env := newTestEnv()
	svc := newImageService(env)
	created := createAd(t, env, "Mountain bike", "10.0.0.1")
	ctx := context.Background()

	files := []UploadedFile{
		{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")},
		{Filename: "side.png", ContentType: "image/png", Data: []byte("pngdata")},
	}
	images, err := svc.Upload(ctx, created.ID, created.EditToken, files)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("uploaded %d images, want 2", len(images))
	}
	if images[0].Position != 0 || images[1].Position != 1 {
		t.Errorf("positions = %d,%d, want 0,1", images[0].Position, images[1].Position)
	}

	// A second batch continues the ordering.
	more, err := svc.Upload(ctx, created.ID, created.EditToken, files[:1])
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if more[0].Position != 2 {
		t.Errorf("position = %d, want 2", more[0].Position)
	}

	t.Run("wrong token answers not found", func(t *testing.T) {
		_, err := svc.Upload(ctx, created.ID, "deadbeef", files)
		if !errors.Is(err, models.ErrInvalidEditToken) {
			t.Fatalf("err = %v, want ErrInvalidEditToken", err)
		}
	})

	t.Run("no files rejected", func(t *testing.T) {
		_, err := svc.Upload(ctx, created.ID, created.EditToken, nil)
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown ad", func(t *testing.T) {
		_, err := svc.Upload(ctx, 999, created.EditToken, files)
		if !errors.Is(err, models.ErrAdNotFound) {
			t.Fatalf("err = %v, want ErrAdNotFound", err)
		}
	})
}

func TestDeleteImage(t *testing.T) {
	env := newTestEnv()
	svc := newImageService(env)
	created := createAd(t, env, "Mountain bike", "10.0.0.1")
	other := createAd(t, env, "Road bike OK", "10.0.0.1")
	ctx := context.Background()

	images, err := svc.Upload(ctx, created.ID, created.EditToken, []UploadedFile{
		{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	imageID := images[0].ID

	t.Run("image must belong to the named ad", func(t *testing.T) {
		err := svc.DeleteImage(ctx, other.ID, imageID, other.EditToken)
		if !errors.Is(err, models.ErrImageNotFound) {
			t.Fatalf("err = %v, want ErrImageNotFound", err)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		err := svc.DeleteImage(ctx, created.ID, imageID, "deadbeef")
		if !errors.Is(err, models.ErrInvalidEditToken) {
			t.Fatalf("err = %v, want ErrInvalidEditToken", err)
		}
	})

	if err := svc.DeleteImage(ctx, created.ID, imageID, created.EditToken); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if remaining, _ := env.images.ListByAdID(ctx, created.ID); len(remaining) != 0 {
		t.Errorf("%d images remain after delete", len(remaining))
	}
	if len(env.storage.removed) != 1 {
		t.Errorf("%d stored objects removed, want 1", len(env.storage.removed))
	}
}
