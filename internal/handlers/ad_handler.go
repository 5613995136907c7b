package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"bulletinboard/internal/models"
	"bulletinboard/internal/services"
)

type AdHandler struct {
	Service *services.AdService
}

func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req models.AdCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.Service.CreateAd(r.Context(), req, clientIP(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdHandler) GetAdByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	resp, err := h.Service.GetAdByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdHandler) GetAdByEditToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	resp, err := h.Service.GetAdByEditToken(r.Context(), token)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdHandler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	var req models.AdUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.Service.UpdateAd(r.Context(), id, req)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdHandler) UpdateAdByEditToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	var req models.AdUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.Service.UpdateAdByEditToken(r.Context(), token, req)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	if err := h.Service.DeleteAd(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdHandler) DeleteAdByEditToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if err := h.Service.DeleteAdByEditToken(r.Context(), token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAds serves the unfiltered list plus the three single-criterion
// filters, with precedence status > category > user.
func (h *AdHandler) GetAds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, ok := models.ParseAdStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", raw))
			return
		}
		ads, err := h.Service.GetAdsByStatus(r.Context(), status)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ads)
		return
	}

	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		ads, err := h.Service.GetAdsByCategoryID(r.Context(), id)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ads)
		return
	}

	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		ads, err := h.Service.GetAdsByUserID(r.Context(), id)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ads)
		return
	}

	ads, err := h.Service.GetAllAds(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

func (h *AdHandler) GetActiveAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Service.GetActiveAds(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

func (h *AdHandler) SearchAds(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.Service.SearchAds(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseSearchRequest maps query parameters onto the search descriptor.
// Unknown enum values and malformed numbers are rejected rather than
// silently dropped.
func parseSearchRequest(r *http.Request) (models.AdSearchRequest, error) {
	q := r.URL.Query()
	req := models.AdSearchRequest{
		Search:        q.Get("q"),
		Page:          0,
		Size:          20,
		SortBy:        q.Get("sort_by"),
		SortDirection: q.Get("sort_direction"),
	}

	if raw := q.Get("status"); raw != "" {
		status, ok := models.ParseAdStatus(raw)
		if !ok {
			return req, fmt.Errorf("unknown status %q", raw)
		}
		req.Status = &status
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid category_id %q", raw)
		}
		req.CategoryID = &id
	}
	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid user_id %q", raw)
		}
		req.UserID = &id
	}
	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("invalid min_price %q", raw)
		}
		req.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("invalid max_price %q", raw)
		}
		req.MaxPrice = &v
	}
	if raw := q.Get("area"); raw != "" {
		area, ok := models.ParseArea(raw)
		if !ok {
			return req, fmt.Errorf("unknown area %q", raw)
		}
		req.Area = &area
	}
	if raw := q.Get("price_period"); raw != "" {
		period, ok := models.ParsePricePeriod(raw)
		if !ok {
			return req, fmt.Errorf("unknown price_period %q", raw)
		}
		req.PricePeriod = &period
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, fmt.Errorf("invalid page %q", raw)
		}
		req.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return req, fmt.Errorf("invalid size %q", raw)
		}
		req.Size = size
	}
	return req, nil
}
