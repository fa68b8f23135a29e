package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type WishlistHandler struct {
	wishlistService service.IWishlistService
}

func NewWishlistHandler(wishlistService service.IWishlistService) *WishlistHandler {
	if wishlistService == nil {
		panic("wishlistService cannot be nil")
	}
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// @Summary get wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {object} api.Response{data=model.Wishlist} "success"
// @Router /wishlist [get]
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	wishlist, err := h.wishlistService.GetWishlist(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get wishlist", err)
		return
	}
	api.SuccessJSON(w, "", wishlist)
}

// @Summary add item to wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Param item body dto.AddWishlistItemDTO true "product, notes and priority"
// @Success 200 {object} api.Response{data=model.Wishlist} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /wishlist/items [post]
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddWishlistItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	wishlist, err := h.wishlistService.AddItem(r.Context(), info.UID, req.ProductID, req.Notes, req.Priority)
	if err != nil {
		api.ErrorJSON(w, "failed to add item", err)
		return
	}
	api.SuccessJSON(w, "item added to wishlist", wishlist)
}

// @Summary remove item from wishlist
// @Tags wishlist
// @Produce json
// @Param productId path int true "product id"
// @Success 200 {object} api.Response{data=model.Wishlist} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /wishlist/items/{productId} [delete]
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productId")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	wishlist, err := h.wishlistService.RemoveItem(r.Context(), info.UID, productID)
	if err != nil {
		api.ErrorJSON(w, "failed to remove item", err)
		return
	}
	api.SuccessJSON(w, "item removed", wishlist)
}

// @Summary clear wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {object} api.Response "success"
// @Router /wishlist [delete]
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	if err := h.wishlistService.ClearWishlist(r.Context(), info.UID); err != nil {
		api.ErrorJSON(w, "failed to clear wishlist", err)
		return
	}
	api.SuccessJSON(w, "wishlist cleared", nil)
}

// @Summary move wishlist item to cart
// @Tags wishlist
// @Produce json
// @Param productId path int true "product id"
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /wishlist/items/{productId}/move-to-cart [post]
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productId")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.wishlistService.MoveToCart(r.Context(), info.UID, productID)
	if err != nil {
		api.ErrorJSON(w, "failed to move item to cart", err)
		return
	}
	api.SuccessJSON(w, "item moved to cart", view)
}

// @Summary get wishlist based suggestions
// @Tags wishlist
// @Produce json
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /wishlist/suggestions [get]
func (h *WishlistHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	products, err := h.wishlistService.GetSuggestions(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get suggestions", err)
		return
	}
	api.ListJSON(w, len(products), int64(len(products)), products)
}
