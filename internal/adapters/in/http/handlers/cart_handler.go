// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"foodhall/internal/adapters/in/http/middleware"
	usecase "foodhall/internal/application/usecase"
)

// CartHandler serves the per-session cart endpoints. All routes sit behind
// middleware.SessionAuth, so by the time a request lands here its sessionKey
// is already resolved; a missing key means a wiring bug, not a guest.
//
//	POST /api/cart/add     {itemId}
//	POST /api/cart/remove  {itemId}
//	POST /api/cart/get     {}
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	sessionKey, ok := middleware.CurrentSessionKey(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch {
	case strings.HasSuffix(path, "/add"):
		h.handleMutate(w, r, start, sessionKey, h.uc.Add)
	case strings.HasSuffix(path, "/remove"):
		h.handleMutate(w, r, start, sessionKey, h.uc.Remove)
	case strings.HasSuffix(path, "/get"):
		h.handleGet(w, r, start, sessionKey)
	default:
		notFoundRoute(w)
	}
}

func (h *CartHandler) handleMutate(
	w http.ResponseWriter,
	r *http.Request,
	start time.Time,
	sessionKey string,
	op func(ctx context.Context, sessionKey, itemID string) error,
) {
	var body struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := op(r.Context(), sessionKey, body.ItemID); err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			writeErr(w, http.StatusBadRequest, "itemId is required")
			return
		}
		// transient store failure: surfaced, never retried here and never a
		// partial write (the repo mutation is a single transaction)
		log.Printf("[cart_handler] mutate failed session=%s item=%s err=%v elapsed=%s",
			sessionKey, body.ItemID, err, time.Since(start))
		writeErr(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time, sessionKey string) {
	items, err := h.uc.Get(r.Context(), sessionKey)
	if err != nil {
		log.Printf("[cart_handler] get failed session=%s err=%v elapsed=%s", sessionKey, err, time.Since(start))
		writeErr(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"cartData": items,
	})
}
