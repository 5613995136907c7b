package handlers

import (
	"io"
	"net/http"

	"bulletinboard/internal/services"
)

const maxUploadBytes = 10 << 20

type AdImageHandler struct {
	Service *services.AdImageService
}

// UploadImages accepts multipart/form-data with one or more "images"
// parts. The edit token travels as a form field or query parameter.
func (h *AdImageHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	token := r.FormValue("edit_token")
	if token == "" {
		token = r.URL.Query().Get("edit_token")
	}

	var files []services.UploadedFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable upload part")
				return
			}
			data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable upload part")
				return
			}
			files = append(files, services.UploadedFile{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	images, err := h.Service.Upload(r.Context(), adID, token, files)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, images)
}

func (h *AdImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "ad_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	imageID, err := pathID(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	token := r.URL.Query().Get("edit_token")

	if err := h.Service.DeleteImage(r.Context(), adID, imageID, token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
