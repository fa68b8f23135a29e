package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
)

type AIHandler struct {
	aiService service.IAIService
}

func NewAIHandler(aiService service.IAIService) *AIHandler {
	if aiService == nil {
		panic("aiService cannot be nil")
	}
	return &AIHandler{
		aiService: aiService,
	}
}

// @Summary scan product image
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.ScanProductDTO true "base64 image"
// @Success 200 {object} api.Response{data=service.ScanResult} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /ai/lens/scan [post]
func (h *AIHandler) ScanProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ScanProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	result, err := h.aiService.ScanProduct(r.Context(), req.Image, req.MimeType)
	if err != nil {
		api.ErrorJSON(w, "failed to analyze image", err)
		return
	}
	api.SuccessJSON(w, "", result)
}

// @Summary search similar products from scan result
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.SimilarSearchDTO true "scan attributes"
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /ai/lens/similar [post]
func (h *AIHandler) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	var req dto.SimilarSearchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	products, err := h.aiService.SearchSimilar(r.Context(), req.Query, req.Category, req.Color, req.Style)
	if err != nil {
		api.ErrorJSON(w, "visual search failed", err)
		return
	}
	api.ListJSON(w, len(products), int64(len(products)), products)
}

// @Summary process live camera frame
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.LiveScanDTO true "base64 frame"
// @Success 200 {object} service.LiveScanResult "always 200, detected可為null"
// @Router /ai/lens/live [post]
func (h *AIHandler) LiveScan(w http.ResponseWriter, r *http.Request) {
	var req dto.LiveScanDTO
	// 任何解析問題一律回no detection, 不阻塞相機串流
	_ = json.NewDecoder(r.Body).Decode(&req)

	result := h.aiService.LiveScan(r.Context(), req.Frame)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// @Summary product recommendations
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.RecommendationDTO true "query, budget, category, preferences"
// @Success 200 {object} api.Response "success"
// @Router /ai/recommendations [post]
func (h *AIHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	text, err := h.aiService.GetRecommendations(r.Context(), service.RecommendationQuery{
		UserQuery:   req.UserQuery,
		Budget:      req.Budget,
		Category:    req.Category,
		Preferences: req.Preferences,
	})
	if err != nil {
		api.ErrorJSON(w, "failed to generate recommendations", err)
		return
	}
	api.SuccessJSON(w, "recommendations generated", text)
}

// @Summary analyze search intent
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.AISearchDTO true "free text query"
// @Success 200 {object} api.Response "success"
// @Router /ai/search [post]
func (h *AIHandler) AnalyzeSearchQuery(w http.ResponseWriter, r *http.Request) {
	var req dto.AISearchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	text, err := h.aiService.AnalyzeSearchQuery(r.Context(), req.Query)
	if err != nil {
		api.ErrorJSON(w, "search analysis failed", err)
		return
	}
	api.SuccessJSON(w, "", text)
}

// @Summary describe product image
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.AnalyzeImageDTO true "base64 image"
// @Success 200 {object} api.Response "success"
// @Router /ai/analyze-image [post]
func (h *AIHandler) DescribeImage(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeImageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	text, err := h.aiService.DescribeImage(r.Context(), req.ImageBase64, req.MimeType)
	if err != nil {
		api.ErrorJSON(w, "image analysis failed", err)
		return
	}
	api.SuccessJSON(w, "", text)
}

// @Summary size recommendation
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.SizeRecommendationDTO true "body measurements"
// @Success 200 {object} api.Response "success"
// @Router /ai/size [post]
func (h *AIHandler) RecommendSize(w http.ResponseWriter, r *http.Request) {
	var req dto.SizeRecommendationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	text, err := h.aiService.RecommendSize(r.Context(), service.SizeQuery{
		Height:        req.Height,
		Weight:        req.Weight,
		BodyType:      req.BodyType,
		ProductType:   req.ProductType,
		FitPreference: req.FitPreference,
	})
	if err != nil {
		api.ErrorJSON(w, "size recommendation failed", err)
		return
	}
	api.SuccessJSON(w, "", text)
}

// @Summary chat with shopping assistant
// @Tags ai
// @Accept json
// @Produce json
// @Param body body dto.ChatDTO true "message and history"
// @Success 200 {object} api.Response{data=service.ChatReply} "success"
// @Router /ai/chat [post]
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	reply, err := h.aiService.Chat(r.Context(), req.Message, req.ChatHistory)
	if err != nil {
		api.ErrorJSON(w, "chat failed", err)
		return
	}
	api.SuccessJSON(w, "", reply)
}
