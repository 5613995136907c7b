package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"bulletinboard/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO categories (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		category.Name, category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		// The UNIQUE name index backs up the service-level check against
		// concurrent creates.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Category{}, fmt.Errorf("%w: %q", models.ErrDuplicateCategoryName, category.Name)
		}
		return models.Category{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	category.ID = id
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (models.Category, error) {
	var category models.Category
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`, id,
	).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, models.ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.UpdatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		category.Name, category.Description, category.UpdatedAt, category.ID,
	)
	if err != nil {
		return models.Category{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Category{}, err
	}
	if rowsAffected == 0 {
		if _, err := r.GetCategoryByID(ctx, category.ID); err != nil {
			return models.Category{}, err
		}
	}
	return r.GetCategoryByID(ctx, category.ID)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		// 1451: ads still reference the category through the FK.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1451 {
			return fmt.Errorf("%w: category %d still has ads", models.ErrValidation, id)
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = ?)`, name,
	).Scan(&exists)
	return exists, err
}

// GetNamesByIDs resolves display names for a set of category ids in one
// query. Missing ids are simply absent from the map.
func (r *CategoryRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`SELECT id, name FROM categories WHERE id IN (%s)`, placeholders)
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
