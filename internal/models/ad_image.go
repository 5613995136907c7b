package models

import "time"

// AdImage is an ordered attachment owned by an ad. Position is zero-based
// and unique per (ad_id, position).
type AdImage struct {
	ID        int64     `json:"id"`
	AdID      int64     `json:"ad_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type AdImageResponse struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}
