package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// @Summary get cart
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.GetCart(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get cart", err)
		return
	}
	api.SuccessJSON(w, "", view)
}

// @Summary add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemDTO true "product and quantity"
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.AddItem(r.Context(), info.UID, req.ProductID, req.Quantity)
	if err != nil {
		api.ErrorJSON(w, "failed to add item", err)
		return
	}
	api.SuccessJSON(w, "item added to cart", view)
}

// @Summary update item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path int true "product id"
// @Param item body dto.UpdateCartItemDTO true "new quantity"
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productId")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.UpdateItem(r.Context(), info.UID, productID, req.Quantity)
	if err != nil {
		api.ErrorJSON(w, "failed to update item", err)
		return
	}
	api.SuccessJSON(w, "cart updated", view)
}

// @Summary remove item from cart
// @Tags cart
// @Produce json
// @Param productId path int true "product id"
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productId")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.RemoveItem(r.Context(), info.UID, productID)
	if err != nil {
		api.ErrorJSON(w, "failed to remove item", err)
		return
	}
	api.SuccessJSON(w, "item removed", view)
}

// @Summary apply coupon
// @Tags cart
// @Accept json
// @Produce json
// @Param coupon body dto.ApplyCouponDTO true "coupon code"
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /cart/apply-coupon [post]
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.ApplyCoupon(r.Context(), info.UID, req.Code)
	if err != nil {
		api.ErrorJSON(w, "failed to apply coupon", err)
		return
	}
	api.SuccessJSON(w, "coupon applied", view)
}

// @Summary remove coupon
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response{data=service.CartView} "success"
// @Router /cart/remove-coupon [delete]
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	view, err := h.cartService.RemoveCoupon(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to remove coupon", err)
		return
	}
	api.SuccessJSON(w, "coupon removed", view)
}

// @Summary clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response "success"
// @Router /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	if err := h.cartService.ClearCart(r.Context(), info.UID); err != nil {
		api.ErrorJSON(w, "failed to clear cart", err)
		return
	}
	api.SuccessJSON(w, "cart cleared", nil)
}

// @Summary get cart totals
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response{data=model.CartTotals} "success"
// @Router /cart/totals [get]
func (h *CartHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	totals, err := h.cartService.GetTotals(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get totals", err)
		return
	}
	api.SuccessJSON(w, "", totals)
}

func parseUintParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
