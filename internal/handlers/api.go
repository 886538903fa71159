package handlers

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type APIHandler struct {
	Store ProductStore
}

func NewAPIHandler(store ProductStore) *APIHandler {
	return &APIHandler{Store: store}
}

// RatingRequest is the body of PATCH /products.
type RatingRequest struct {
	ProductID string `json:"productId" example:"uow"`
	Rating    int    `json:"rating" example:"5"`
}

// GetProducts godoc
// @Summary      List products
// @Description  Returns every product in the catalog in file order
// @Tags         products
// @Produce      json
// @Success      200  {array}  models.Product
// @Router       /products [get]
func (h *APIHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.GetAll())
}

// AddRating godoc
// @Summary      Rate a product
// @Description  Appends a rating to the product with the given id
// @Tags         products
// @Accept       json
// @Param        request  body  RatingRequest  true  "Rating request"
// @Success      200
// @Failure      400  {string}  string  "ProductId is required."
// @Router       /products [patch]
func (h *APIHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	var req *RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		http.Error(w, "Invalid rating request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		http.Error(w, "ProductId is required.", http.StatusBadRequest)
		return
	}
	if !h.Store.AddRating(req.ProductID, req.Rating) {
		log.Debug().Str("id", req.ProductID).Msg("rating ignored, product not found")
	}
	w.WriteHeader(http.StatusOK)
}
