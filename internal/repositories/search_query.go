package repositories

import (
	"strings"

	"bulletinboard/internal/models"
)

// searchFilters maps each optional field of a search request to the clause
// it contributes. Filters whose present() is false add nothing; the rest
// are AND'ed together, so an empty request matches every ad.
var searchFilters = []struct {
	present func(models.AdSearchRequest) bool
	clause  func(models.AdSearchRequest) (string, []interface{})
}{
	{
		present: func(r models.AdSearchRequest) bool { return r.Status != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "status = ?", []interface{}{string(*r.Status)}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.CategoryID != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "category_id = ?", []interface{}{*r.CategoryID}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.UserID != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "user_id = ?", []interface{}{*r.UserID}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.MinPrice != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "price >= ?", []interface{}{*r.MinPrice}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.MaxPrice != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "price <= ?", []interface{}{*r.MaxPrice}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return strings.TrimSpace(r.Search) != "" },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			pattern := "%" + strings.ToLower(strings.TrimSpace(r.Search)) + "%"
			return "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", []interface{}{pattern, pattern}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.Area != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "area = ?", []interface{}{string(*r.Area)}
		},
	},
	{
		present: func(r models.AdSearchRequest) bool { return r.PricePeriod != nil },
		clause: func(r models.AdSearchRequest) (string, []interface{}) {
			return "price_period = ?", []interface{}{string(*r.PricePeriod)}
		},
	},
}

// searchConditions folds the filter table into a WHERE fragment. The empty
// request yields ("", nil): no WHERE clause, match all.
func searchConditions(req models.AdSearchRequest) (string, []interface{}) {
	var (
		conditions []string
		params     []interface{}
	)
	for _, f := range searchFilters {
		if !f.present(req) {
			continue
		}
		expr, args := f.clause(req)
		conditions = append(conditions, expr)
		params = append(params, args...)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), params
}

// orderClause resolves the sort column from the closed key set and the
// direction. Unknown keys fall back to created_at; anything that is not
// "asc" sorts descending. Neither is an error.
func orderClause(sortBy, sortDirection string) string {
	var column string
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		column = "price"
	case "title":
		column = "title"
	case "updatedat":
		column = "updated_at"
	default:
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortDirection), "asc") {
		direction = "ASC"
	}
	return " ORDER BY " + column + " " + direction
}

const adColumns = "id, title, description, price, category_id, user_id, status, created_at, updated_at, created_ip, area, price_period, edit_token"

// BuildSearchQuery renders the filtered, sorted, paginated SELECT.
// Offset is page*size; size has no upper bound here.
func BuildSearchQuery(req models.AdSearchRequest) (string, []interface{}) {
	where, params := searchConditions(req)
	query := "SELECT " + adColumns + " FROM ads" + where +
		orderClause(req.SortBy, req.SortDirection) +
		" LIMIT ? OFFSET ?"
	params = append(params, req.Size, req.Page*req.Size)
	return query, params
}

// BuildCountQuery renders the count twin of BuildSearchQuery. It shares
// searchConditions so total_elements can never drift from the page content.
func BuildCountQuery(req models.AdSearchRequest) (string, []interface{}) {
	where, params := searchConditions(req)
	return "SELECT COUNT(*) FROM ads" + where, params
}
