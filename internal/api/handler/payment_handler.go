package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/gateway"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type PaymentHandler struct {
	paymentService service.IPaymentService
}

func NewPaymentHandler(paymentService service.IPaymentService) *PaymentHandler {
	if paymentService == nil {
		panic("paymentService cannot be nil")
	}
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// @Summary create payment for order
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentDTO true "order number and gateway"
// @Success 201 {object} api.Response{data=service.PaymentInitResult} "created"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	result, err := h.paymentService.CreatePayment(r.Context(), info.UID, req.OrderNumber,
		model.PaymentGateway(req.Gateway))
	if err != nil {
		api.ErrorJSON(w, "failed to create payment", err)
		return
	}
	api.CreatedJSON(w, "payment created", result)
}

// @Summary verify payment callback
// @Tags payments
// @Accept json
// @Produce json
// @Param callback body dto.VerifyPaymentDTO true "gateway callback data"
// @Success 200 {object} api.Response{data=model.Payment} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	payment, err := h.paymentService.VerifyPayment(r.Context(), info.UID, req.PaymentNumber, gateway.Callback{
		GatewayPaymentID: req.GatewayPaymentID,
		GatewayOrderID:   req.GatewayOrderID,
		Signature:        req.Signature,
		Status:           req.Status,
	})
	if err != nil {
		api.ErrorJSON(w, "payment verification failed", err)
		return
	}
	api.SuccessJSON(w, "payment verified", payment)
}

// @Summary refund payment (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "payment number"
// @Param body body dto.RefundPaymentDTO false "refund amount and reason"
// @Success 200 {object} api.Response{data=model.Payment} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.RefundPaymentDTO
	// body可以為空, 預設全額退
	_ = json.NewDecoder(r.Body).Decode(&req)

	payment, err := h.paymentService.RefundPayment(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Reason)
	if err != nil {
		api.ErrorJSON(w, "refund failed", err)
		return
	}
	api.SuccessJSON(w, "payment refunded", payment)
}

// @Summary capture payment (admin)
// @Tags admin
// @Produce json
// @Param id path string true "payment number"
// @Success 200 {object} api.Response{data=model.Payment} "success"
// @Router /payments/{id}/capture [post]
func (h *PaymentHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.paymentService.CapturePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, "capture failed", err)
		return
	}
	api.SuccessJSON(w, "payment captured", payment)
}

// @Summary get payment status
// @Tags payments
// @Produce json
// @Param id path string true "payment number"
// @Success 200 {object} api.Response{data=model.Payment} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	payment, err := h.paymentService.GetPayment(r.Context(), info.UID, chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, "failed to get payment", err)
		return
	}
	api.SuccessJSON(w, "", payment)
}

// @Summary get payment by order
// @Tags payments
// @Produce json
// @Param orderId path string true "order number"
// @Success 200 {object} api.Response{data=model.Payment} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /payments/order/{orderId} [get]
func (h *PaymentHandler) GetPaymentByOrder(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	payment, err := h.paymentService.GetPaymentByOrder(r.Context(), info.UID, chi.URLParam(r, "orderId"))
	if err != nil {
		api.ErrorJSON(w, "failed to get payment", err)
		return
	}
	api.SuccessJSON(w, "", payment)
}
