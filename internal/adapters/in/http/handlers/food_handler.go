// internal/adapters/in/http/handlers/food_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	usecase "foodhall/internal/application/usecase"
	fooddom "foodhall/internal/domain/fooditem"
)

// maxImageMemory bounds the in-memory part of multipart parsing.
const maxImageMemory = 10 << 20 // 10 MiB

// FoodHandler serves the catalog endpoints:
//
//	GET  /api/food/list
//	POST /api/food/add     (multipart: image + name/description/price/category)
//	POST /api/food/remove  {id}
type FoodHandler struct {
	uc *usecase.CatalogUsecase
}

func NewFoodHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &FoodHandler{uc: uc}
}

func (h *FoodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "food handler is not configured")
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/list"):
		h.handleList(w, r, start)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/add"):
		h.handleAdd(w, r, start)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/remove"):
		h.handleRemove(w, r, start)
	case strings.HasSuffix(path, "/list") || strings.HasSuffix(path, "/add") || strings.HasSuffix(path, "/remove"):
		methodNotAllowed(w)
	default:
		notFoundRoute(w)
	}
}

func (h *FoodHandler) handleList(w http.ResponseWriter, r *http.Request, start time.Time) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		log.Printf("[food_handler] list failed err=%v elapsed=%s", err, time.Since(start))
		writeErr(w, http.StatusInternalServerError, "Error fetching food list")
		return
	}
	if items == nil {
		items = []fooddom.FoodItem{}
	}

	log.Printf("[food_handler] list ok count=%d elapsed=%s", len(items), time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    items,
		"count":   len(items),
	})
}

func (h *FoodHandler) handleAdd(w http.ResponseWriter, r *http.Request, start time.Time) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageMemory+1))
	if err != nil || len(data) == 0 {
		writeErr(w, http.StatusBadRequest, "Image file is required")
		return
	}
	if len(data) > maxImageMemory {
		writeErr(w, http.StatusBadRequest, "image too large")
		return
	}

	priceStr := strings.TrimSpace(r.FormValue("price"))
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		writeErr(w, http.StatusBadRequest, "invalid price")
		return
	}

	in := usecase.AddFoodInput{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Price:            price,
		Category:         r.FormValue("category"),
		Image:            data,
		ImageContentType: header.Header.Get("Content-Type"),
	}

	item, err := h.uc.Add(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCatalogImageRequired):
			writeErr(w, http.StatusBadRequest, "Image file is required")
		case errors.Is(err, usecase.ErrCatalogInvalidArgument), errors.Is(err, fooddom.ErrInvalidInput):
			writeErr(w, http.StatusBadRequest, err.Error())
		default:
			// asset-storage or store failure: no record was created
			log.Printf("[food_handler] add failed name=%q err=%v elapsed=%s", in.Name, err, time.Since(start))
			writeErr(w, http.StatusInternalServerError, "Error adding food")
		}
		return
	}

	log.Printf("[food_handler] add ok id=%s elapsed=%s", item.ID, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Food Added",
		"data":    item,
	})
}

func (h *FoodHandler) handleRemove(w http.ResponseWriter, r *http.Request, start time.Time) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(body.ID) == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.uc.Remove(r.Context(), body.ID); err != nil {
		if errors.Is(err, fooddom.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Food not found")
			return
		}
		log.Printf("[food_handler] remove failed id=%s err=%v elapsed=%s", body.ID, err, time.Since(start))
		writeErr(w, http.StatusInternalServerError, "Error removing food")
		return
	}

	log.Printf("[food_handler] remove ok id=%s elapsed=%s", body.ID, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Food removed",
	})
}
