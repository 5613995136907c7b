package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"bulletinboard/internal/models"
)

type AdRepository struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAd(row rowScanner) (models.Ad, error) {
	var (
		ad          models.Ad
		userID      sql.NullInt64
		area        sql.NullString
		pricePeriod sql.NullString
		createdIP   sql.NullString
		status      string
	)
	err := row.Scan(
		&ad.ID, &ad.Title, &ad.Description, &ad.Price, &ad.CategoryID,
		&userID, &status, &ad.CreatedAt, &ad.UpdatedAt, &createdIP,
		&area, &pricePeriod, &ad.EditToken,
	)
	if err != nil {
		return models.Ad{}, err
	}
	ad.Status = models.AdStatus(status)
	if userID.Valid {
		ad.UserID = &userID.Int64
	}
	if createdIP.Valid {
		ad.CreatedIP = createdIP.String
	}
	if area.Valid {
		a := models.Area(area.String)
		ad.Area = &a
	}
	if pricePeriod.Valid {
		p := models.PricePeriod(pricePeriod.String)
		ad.PricePeriod = &p
	}
	return ad, nil
}

func nullArea(a *models.Area) interface{} {
	if a == nil {
		return nil
	}
	return string(*a)
}

func nullPeriod(p *models.PricePeriod) interface{} {
	if p == nil {
		return nil
	}
	return string(*p)
}

func (r *AdRepository) CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	query := `
		INSERT INTO ads
			(title, description, price, category_id, user_id, status, created_at, updated_at, created_ip, area, price_period, edit_token)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		ad.Title, ad.Description, ad.Price, ad.CategoryID, ad.UserID,
		string(ad.Status), ad.CreatedAt, ad.UpdatedAt, ad.CreatedIP,
		nullArea(ad.Area), nullPeriod(ad.PricePeriod), ad.EditToken,
	)
	if err != nil {
		// A UNIQUE collision on edit_token must fail the creation, never
		// overwrite the holder of the colliding token.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Ad{}, fmt.Errorf("ad create: edit token collision: %w", err)
		}
		return models.Ad{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Ad{}, err
	}
	ad.ID = id
	return ad, nil
}

func (r *AdRepository) GetAdByID(ctx context.Context, id int64) (models.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE id = ?`
	ad, err := scanAd(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ad{}, models.ErrAdNotFound
	}
	if err != nil {
		return models.Ad{}, err
	}
	return ad, nil
}

// GetAdByEditToken resolves the possession token. An unknown token is the
// same ErrAdNotFound as an unknown id: callers learn nothing beyond "no".
func (r *AdRepository) GetAdByEditToken(ctx context.Context, token string) (models.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE edit_token = ?`
	ad, err := scanAd(r.DB.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ad{}, models.ErrAdNotFound
	}
	if err != nil {
		return models.Ad{}, err
	}
	return ad, nil
}

// UpdateAd persists the mutable columns. The edit token is immutable and
// deliberately absent from the SET list.
func (r *AdRepository) UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	query := `
		UPDATE ads
		SET title = ?, description = ?, price = ?, category_id = ?, status = ?,
		    updated_at = ?, area = ?, price_period = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		ad.Title, ad.Description, ad.Price, ad.CategoryID, string(ad.Status),
		ad.UpdatedAt, nullArea(ad.Area), nullPeriod(ad.PricePeriod), ad.ID,
	)
	if err != nil {
		return models.Ad{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Ad{}, err
	}
	if rowsAffected == 0 {
		// MySQL also reports 0 for no-op updates; re-check existence so a
		// same-values PUT is not mistaken for a missing row.
		if _, err := r.GetAdByID(ctx, ad.ID); err != nil {
			return models.Ad{}, err
		}
	}
	return ad, nil
}

func (r *AdRepository) DeleteAd(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM ads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) listAds(ctx context.Context, query string, args ...interface{}) ([]models.Ad, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

func (r *AdRepository) ListAds(ctx context.Context) ([]models.Ad, error) {
	return r.listAds(ctx, `SELECT `+adColumns+` FROM ads ORDER BY created_at DESC`)
}

func (r *AdRepository) ListAdsByStatus(ctx context.Context, status models.AdStatus) ([]models.Ad, error) {
	return r.listAds(ctx, `SELECT `+adColumns+` FROM ads WHERE status = ? ORDER BY created_at DESC`, string(status))
}

func (r *AdRepository) ListAdsByCategoryID(ctx context.Context, categoryID int64) ([]models.Ad, error) {
	return r.listAds(ctx, `SELECT `+adColumns+` FROM ads WHERE category_id = ? ORDER BY created_at DESC`, categoryID)
}

func (r *AdRepository) ListAdsByUserID(ctx context.Context, userID int64) ([]models.Ad, error) {
	return r.listAds(ctx, `SELECT `+adColumns+` FROM ads WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *AdRepository) SearchAds(ctx context.Context, req models.AdSearchRequest) ([]models.Ad, error) {
	query, params := BuildSearchQuery(req)
	return r.listAds(ctx, query, params...)
}

func (r *AdRepository) CountAds(ctx context.Context, req models.AdSearchRequest) (int64, error) {
	query, params := BuildCountQuery(req)
	var count int64
	if err := r.DB.QueryRowContext(ctx, query, params...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountByIPSince counts ads created from the exact IP in the trailing
// window. Recomputed per request: a sliding window, not a fixed bucket.
func (r *AdRepository) CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ads WHERE created_ip = ? AND created_at >= ?`,
		ip, since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
