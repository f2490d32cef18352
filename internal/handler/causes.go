package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Dan9191/donation-service/internal/models"
)

const maxUploadSize = 32 << 20

// end_date arrives as an ISO 8601 string; accept the common shapes.
var endDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseEndDate(value string) (time.Time, error) {
	var err error
	for _, layout := range endDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func causeIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// CreateCause handles cause creation from a multipart form with both images
func (h *Handler) CreateCause(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	name := r.FormValue("name")
	tagline := r.FormValue("tagline")
	description := r.FormValue("description")
	if name == "" || tagline == "" || description == "" {
		h.respondError(w, http.StatusBadRequest, "name, tagline and description are required")
		return
	}
	endDate, err := parseEndDate(r.FormValue("end_date"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "end_date must be an ISO 8601 date-time")
		return
	}

	bannerPath, err := h.saveFormImage(r, "banner_image")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "banner_image file is required")
		return
	}
	coverPath, err := h.saveFormImage(r, "cover_image")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "cover_image file is required")
		return
	}

	cause := &models.Cause{
		Name:        name,
		Tagline:     tagline,
		Description: description,
		EndDate:     endDate,
		BannerImage: bannerPath,
		CoverImage:  coverPath,
	}
	if err := h.svc.CreateCause(cause); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, cause)
}

// ListCauses returns all causes
func (h *Handler) ListCauses(w http.ResponseWriter, r *http.Request) {
	causes, err := h.svc.ListCauses()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, causes)
}

// UpdateCause handles cause updates; image files are optional and replace
// the stored ones when present
func (h *Handler) UpdateCause(w http.ResponseWriter, r *http.Request) {
	id, err := causeIDFromRequest(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid cause id")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	cause, err := h.svc.GetCause(id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	if name := r.FormValue("name"); name != "" {
		cause.Name = name
	}
	if tagline := r.FormValue("tagline"); tagline != "" {
		cause.Tagline = tagline
	}
	if description := r.FormValue("description"); description != "" {
		cause.Description = description
	}
	if value := r.FormValue("end_date"); value != "" {
		endDate, err := parseEndDate(value)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "end_date must be an ISO 8601 date-time")
			return
		}
		cause.EndDate = endDate
	}

	if path, err := h.saveFormImage(r, "banner_image"); err == nil {
		cause.BannerImage = path
	}
	if path, err := h.saveFormImage(r, "cover_image"); err == nil {
		cause.CoverImage = path
	}

	if err := h.svc.UpdateCause(cause); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cause)
}

// DeleteCause removes a cause
func (h *Handler) DeleteCause(w http.ResponseWriter, r *http.Request) {
	id, err := causeIDFromRequest(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid cause id")
		return
	}
	if err := h.svc.DeleteCause(id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Cause deleted successfully"})
}

func (h *Handler) saveFormImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return h.uploader.Save(file, header)
}
