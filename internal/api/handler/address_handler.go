package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type AddressHandler struct {
	addressService service.IAddressService
}

func NewAddressHandler(addressService service.IAddressService) *AddressHandler {
	if addressService == nil {
		panic("addressService cannot be nil")
	}
	return &AddressHandler{
		addressService: addressService,
	}
}

// @Summary list my addresses
// @Tags addresses
// @Produce json
// @Success 200 {object} api.Response{data=[]model.Address} "success"
// @Router /addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	addresses, err := h.addressService.ListAddresses(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to list addresses", err)
		return
	}
	api.ListJSON(w, len(addresses), int64(len(addresses)), addresses)
}

// @Summary get address
// @Tags addresses
// @Produce json
// @Param id path int true "address id"
// @Success 200 {object} api.Response{data=model.Address} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /addresses/{id} [get]
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid address id", apperr.New(apperr.BadRequestCode, "invalid address id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	address, err := h.addressService.GetAddress(r.Context(), info.UID, addressID)
	if err != nil {
		api.ErrorJSON(w, "failed to get address", err)
		return
	}
	api.SuccessJSON(w, "", address)
}

// @Summary get default address
// @Tags addresses
// @Produce json
// @Success 200 {object} api.Response{data=model.Address} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /addresses/default [get]
func (h *AddressHandler) GetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	address, err := h.addressService.GetDefaultAddress(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get default address", err)
		return
	}
	api.SuccessJSON(w, "", address)
}

// @Summary create address
// @Tags addresses
// @Accept json
// @Produce json
// @Param address body dto.AddressDTO true "address payload"
// @Success 201 {object} api.Response{data=model.Address} "created"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	address := addressFromDTO(&req)
	address.UserUID = info.UID
	if err := h.addressService.CreateAddress(r.Context(), address); err != nil {
		api.ErrorJSON(w, "failed to create address", err)
		return
	}
	api.CreatedJSON(w, "address created", address)
}

// @Summary update address
// @Tags addresses
// @Accept json
// @Produce json
// @Param id path int true "address id"
// @Param address body dto.AddressDTO true "address payload"
// @Success 200 {object} api.Response{data=model.Address} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid address id", apperr.New(apperr.BadRequestCode, "invalid address id"))
		return
	}

	var req dto.AddressDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	address := addressFromDTO(&req)
	address.AddressID = addressID
	address.UserUID = info.UID
	if err := h.addressService.UpdateAddress(r.Context(), address); err != nil {
		api.ErrorJSON(w, "failed to update address", err)
		return
	}
	api.SuccessJSON(w, "address updated", address)
}

// @Summary delete address
// @Tags addresses
// @Produce json
// @Param id path int true "address id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid address id", apperr.New(apperr.BadRequestCode, "invalid address id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	if err := h.addressService.DeleteAddress(r.Context(), info.UID, addressID); err != nil {
		api.ErrorJSON(w, "failed to delete address", err)
		return
	}
	api.SuccessJSON(w, "address deleted", nil)
}

// @Summary set default address
// @Tags addresses
// @Produce json
// @Param id path int true "address id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /addresses/{id}/default [put]
func (h *AddressHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid address id", apperr.New(apperr.BadRequestCode, "invalid address id"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	if err := h.addressService.SetDefaultAddress(r.Context(), info.UID, addressID); err != nil {
		api.ErrorJSON(w, "failed to set default address", err)
		return
	}
	api.SuccessJSON(w, "default address updated", nil)
}

func addressFromDTO(req *dto.AddressDTO) *model.Address {
	return &model.Address{
		Type:         model.AddressType(req.Type),
		Label:        req.Label,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Landmark:     req.Landmark,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
		Instructions: req.Instructions,
	}
}
