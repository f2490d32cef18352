package handler

import (
	"io"
	"net/http"
)

const successHTML = `<html>
    <body>
        <h1>Payment Successful!</h1>
    </body>
</html>`

const cancelledHTML = `<html>
    <body>
        <h1>Payment Cancelled!</h1>
    </body>
</html>`

// CreateCheckoutSession redirects the caller to the provider's hosted
// checkout page for the cause
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	id, err := causeIDFromRequest(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid cause id")
		return
	}

	url, err := h.svc.CreateCheckoutSession(id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// StripeWebhook settles payment events pushed by the provider. The body is
// read raw; the signature covers the exact bytes.
func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.svc.ProcessWebhook(payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PaymentSuccess renders the post-checkout success page
func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(successHTML))
}

// PaymentCancelled renders the post-checkout cancellation page
func (h *Handler) PaymentCancelled(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(cancelledHTML))
}
