package handler

import (
	"net/http"

	"github.com/Dan9191/donation-service/internal/export"
)

// ListDonations returns the donation ledger
func (h *Handler) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.svc.ListDonations()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, donations)
}

// ExportDonations returns the ledger as XML for accounting import
func (h *Handler) ExportDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.svc.ListDonations()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	data, err := export.BuildLedger(donations)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
