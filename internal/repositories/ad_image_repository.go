package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bulletinboard/internal/models"
)

type AdImageRepository struct {
	DB *sql.DB
}

func (r *AdImageRepository) CreateImage(ctx context.Context, img models.AdImage) (models.AdImage, error) {
	img.CreatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO ad_images (ad_id, url, position, created_at) VALUES (?, ?, ?, ?)`,
		img.AdID, img.URL, img.Position, img.CreatedAt,
	)
	if err != nil {
		return models.AdImage{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.AdImage{}, err
	}
	img.ID = id
	return img, nil
}

func (r *AdImageRepository) GetImageByID(ctx context.Context, id int64) (models.AdImage, error) {
	var img models.AdImage
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, ad_id, url, position, created_at FROM ad_images WHERE id = ?`, id,
	).Scan(&img.ID, &img.AdID, &img.URL, &img.Position, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdImage{}, models.ErrImageNotFound
	}
	if err != nil {
		return models.AdImage{}, err
	}
	return img, nil
}

func (r *AdImageRepository) ListByAdID(ctx context.Context, adID int64) ([]models.AdImage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, ad_id, url, position, created_at FROM ad_images WHERE ad_id = ? ORDER BY position ASC`,
		adID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.AdImage
	for rows.Next() {
		var img models.AdImage
		if err := rows.Scan(&img.ID, &img.AdID, &img.URL, &img.Position, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ListByAdIDs loads images for a whole result page in one query, grouped
// by ad id, each group position-ordered. Keeps list assembly at a single
// round trip instead of one per row.
func (r *AdImageRepository) ListByAdIDs(ctx context.Context, adIDs []int64) (map[int64][]models.AdImage, error) {
	grouped := make(map[int64][]models.AdImage)
	if len(adIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(adIDs)), ",")
	query := fmt.Sprintf(
		`SELECT id, ad_id, url, position, created_at FROM ad_images WHERE ad_id IN (%s) ORDER BY ad_id, position ASC`,
		placeholders,
	)
	args := make([]interface{}, 0, len(adIDs))
	for _, id := range adIDs {
		args = append(args, id)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var img models.AdImage
		if err := rows.Scan(&img.ID, &img.AdID, &img.URL, &img.Position, &img.CreatedAt); err != nil {
			return nil, err
		}
		grouped[img.AdID] = append(grouped[img.AdID], img)
	}
	return grouped, rows.Err()
}

// NextPosition returns max(position)+1 for an ad, 0 when it has no images.
func (r *AdImageRepository) NextPosition(ctx context.Context, adID int64) (int, error) {
	var max sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		`SELECT MAX(position) FROM ad_images WHERE ad_id = ?`, adID,
	).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

func (r *AdImageRepository) DeleteImage(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM ad_images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrImageNotFound
	}
	return nil
}

func (r *AdImageRepository) DeleteByAdID(ctx context.Context, adID int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM ad_images WHERE ad_id = ?`, adID)
	return err
}
