package models

import (
	"strings"
	"time"
)

// AdStatus is the closed set of lifecycle states an ad can be in.
// DELETED is what the admin moderation path leaves behind; the owner
// token path removes the row entirely instead.
type AdStatus string

const (
	StatusActive   AdStatus = "ACTIVE"
	StatusInactive AdStatus = "INACTIVE"
	StatusSold     AdStatus = "SOLD"
	StatusBlocked  AdStatus = "BLOCKED"
	StatusDeleted  AdStatus = "DELETED"
)

// ParseAdStatus matches case-insensitively against the closed status set.
func ParseAdStatus(s string) (AdStatus, bool) {
	switch AdStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusSold:
		return StatusSold, true
	case StatusBlocked:
		return StatusBlocked, true
	case StatusDeleted:
		return StatusDeleted, true
	}
	return "", false
}

type Area string

const (
	AreaThongSala Area = "THONG_SALA"
	AreaSrithanu  Area = "SRITHANU"
	AreaHaadRin   Area = "HAAD_RIN"
	AreaBaanTai   Area = "BAAN_TAI"
	AreaBaanKai   Area = "BAAN_KAI"
	AreaChaloklum Area = "CHALOKLUM"
	AreaMaeHaad   Area = "MAE_HAAD"
	AreaSalad     Area = "SALAD"
	AreaHinKong   Area = "HIN_KONG"
	AreaWokTum    Area = "WOK_TUM"
	AreaOther     Area = "OTHER"
)

func ParseArea(s string) (Area, bool) {
	switch Area(strings.ToUpper(strings.TrimSpace(s))) {
	case AreaThongSala, AreaSrithanu, AreaHaadRin, AreaBaanTai, AreaBaanKai,
		AreaChaloklum, AreaMaeHaad, AreaSalad, AreaHinKong, AreaWokTum, AreaOther:
		return Area(strings.ToUpper(strings.TrimSpace(s))), true
	}
	return "", false
}

type PricePeriod string

const (
	PeriodDay   PricePeriod = "DAY"
	PeriodWeek  PricePeriod = "WEEK"
	PeriodMonth PricePeriod = "MONTH"
	PeriodSale  PricePeriod = "SALE"
)

func ParsePricePeriod(s string) (PricePeriod, bool) {
	switch PricePeriod(strings.ToUpper(strings.TrimSpace(s))) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodSale:
		return PricePeriod(strings.ToUpper(strings.TrimSpace(s))), true
	}
	return "", false
}

// Ad is the persisted entity. EditToken is the bearer secret issued at
// creation; it never leaves through JSON from here. Response DTOs decide
// when it is exposed.
type Ad struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	CategoryID  int64        `json:"category_id"`
	UserID      *int64       `json:"user_id,omitempty"`
	Status      AdStatus     `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CreatedIP   string       `json:"-"`
	Area        *Area        `json:"area,omitempty"`
	PricePeriod *PricePeriod `json:"price_period,omitempty"`
	EditToken   string       `json:"-"`
}

// AdCreateRequest is the creation payload.
type AdCreateRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	CategoryID  int64        `json:"category_id"`
	UserID      *int64       `json:"user_id,omitempty"`
	Area        *Area        `json:"area,omitempty"`
	PricePeriod *PricePeriod `json:"price_period,omitempty"`
}

// AdUpdateRequest carries patch semantics: nil means "leave the stored
// value alone". A JSON null decodes to nil too, so clients cannot clear a
// field by sending null.
type AdUpdateRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	CategoryID  *int64       `json:"category_id"`
	Status      *AdStatus    `json:"status"`
	Area        *Area        `json:"area"`
	PricePeriod *PricePeriod `json:"price_period"`
}

// AdResponse is the assembled view: denormalized names, ordered images,
// and the edit token only on the paths allowed to show it.
type AdResponse struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Price        float64           `json:"price"`
	CategoryID   int64             `json:"category_id"`
	CategoryName *string           `json:"category_name"`
	UserID       *int64            `json:"user_id,omitempty"`
	UserName     *string           `json:"user_name,omitempty"`
	Status       AdStatus          `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Area         *Area             `json:"area,omitempty"`
	PricePeriod  *PricePeriod      `json:"price_period,omitempty"`
	Images       []AdImageResponse `json:"images"`
	EditToken    string            `json:"edit_token,omitempty"`
}
