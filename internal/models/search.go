package models

// AdSearchRequest is the ephemeral query descriptor for /api/ads/search.
// Nil filter fields contribute no clause; an entirely empty request
// matches every ad. Inverted price ranges are the caller's problem and
// simply produce an empty page.
type AdSearchRequest struct {
	CategoryID    *int64
	UserID        *int64
	Status        *AdStatus
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	Area          *Area
	PricePeriod   *PricePeriod
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

// PageResponse is the pagination envelope for search results.
type PageResponse struct {
	Content       []AdResponse `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int64        `json:"total_elements"`
	TotalPages    int          `json:"total_pages"`
}

// NewPageResponse computes total_pages as ceil(totalElements/size).
func NewPageResponse(content []AdResponse, page, size int, total int64) PageResponse {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	if content == nil {
		content = []AdResponse{}
	}
	return PageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
