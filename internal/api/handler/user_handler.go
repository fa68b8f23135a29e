package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
	}
}

// @Summary sync user with identity provider
// @Tags users
// @Produce json
// @Success 200 {object} api.Response{data=model.User} "success"
// @Router /users/sync [post]
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.SyncUser(r.Context(), info)
	if err != nil {
		api.ErrorJSON(w, "failed to sync user", err)
		return
	}
	api.SuccessJSON(w, "user synced", user)
}

// @Summary get my profile
// @Tags users
// @Produce json
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /users/me [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.GetProfile(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get profile", err)
		return
	}
	api.SuccessJSON(w, "", user)
}

// @Summary update my profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileDTO true "profile fields"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.UpdateProfile(r.Context(), info.UID, model.UserProfile{
		DisplayName: req.DisplayName,
		FullName:    req.FullName,
		PhotoURL:    req.PhotoURL,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Bio:         req.Bio,
	}, req.Phone)
	if err != nil {
		api.ErrorJSON(w, "failed to update profile", err)
		return
	}
	api.SuccessJSON(w, "profile updated", user)
}

// @Summary update my preferences
// @Tags users
// @Accept json
// @Produce json
// @Param preferences body dto.UpdatePreferencesDTO true "preference fields"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Router /users/me/preferences [put]
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePreferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.UpdatePreferences(r.Context(), info.UID, model.UserPreferences{
		Categories:  req.Categories,
		Brands:      req.Brands,
		NotifyEmail: req.NotifyEmail,
		NotifySMS:   req.NotifySMS,
		NotifyPush:  req.NotifyPush,
	})
	if err != nil {
		api.ErrorJSON(w, "failed to update preferences", err)
		return
	}
	api.SuccessJSON(w, "preferences updated", user)
}

// @Summary add loyalty points
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.AddLoyaltyPointsDTO true "points, action and reference"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /users/me/loyalty [post]
func (h *UserHandler) AddLoyaltyPoints(w http.ResponseWriter, r *http.Request) {
	var req dto.AddLoyaltyPointsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.AddLoyaltyPoints(r.Context(), info.UID, req.Points, req.Action, req.RefID)
	if err != nil {
		api.ErrorJSON(w, "failed to add loyalty points", err)
		return
	}
	api.SuccessJSON(w, "loyalty points updated", user)
}

// @Summary get wallet balance
// @Tags users
// @Produce json
// @Success 200 {object} api.Response "success"
// @Router /users/me/wallet [get]
func (h *UserHandler) GetWalletBalance(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	balance, err := h.userService.GetWalletBalance(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to get wallet balance", err)
		return
	}
	api.SuccessJSON(w, "", map[string]any{"balance": balance})
}

// @Summary top up wallet
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.TopUpWalletDTO true "amount"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /users/me/wallet/topup [post]
func (h *UserHandler) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.TopUpWalletDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	user, err := h.userService.TopUpWallet(r.Context(), info.UID, req.Amount)
	if err != nil {
		api.ErrorJSON(w, "failed to top up wallet", err)
		return
	}
	api.SuccessJSON(w, "wallet topped up", user)
}

// @Summary list users (admin)
// @Tags admin
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} api.Response{data=[]model.User} "success"
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, total, err := h.userService.ListUsers(r.Context(), page, limit)
	if err != nil {
		api.ErrorJSON(w, "failed to list users", err)
		return
	}
	api.ListJSON(w, len(users), total, users)
}

// @Summary get user detail (admin)
// @Tags admin
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid user id", apperr.New(apperr.BadRequestCode, "invalid user id"))
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		api.ErrorJSON(w, "failed to get user", err)
		return
	}
	api.SuccessJSON(w, "", user)
}

// @Summary update user status (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param body body dto.UpdateUserStatusDTO true "new status"
// @Success 200 {object} api.Response "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /admin/users/{id}/status [put]
func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid user id", apperr.New(apperr.BadRequestCode, "invalid user id"))
		return
	}

	var req dto.UpdateUserStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	if err := h.userService.UpdateUserStatus(r.Context(), userID, req.Status); err != nil {
		api.ErrorJSON(w, "failed to update user status", err)
		return
	}
	api.SuccessJSON(w, "user status updated", nil)
}
