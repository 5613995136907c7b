package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bulletinboard/internal/models"
	"bulletinboard/internal/services"
)

type AdminHandler struct {
	Service *services.AdminService
}

func (h *AdminHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	var status *models.AdStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := models.ParseAdStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", raw))
			return
		}
		status = &parsed
	}
	ads, err := h.Service.ListAds(r.Context(), status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, ok := models.ParseAdStatus(body.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", body.Status))
		return
	}
	resp, err := h.Service.ForceStatus(r.Context(), id, status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
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
