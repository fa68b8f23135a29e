package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/ai/gemini"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
)

const (
	visualSearchLimit = 10
	scanPrompt        = "Analyze this image and identify the main fashion or lifestyle product. " +
		"Return a JSON object with fields: 'productName', 'category', 'color', 'style', 'description'. " +
		"Do not use markdown formatting."
	liveScanPrompt = "Identify the single main object in this frame. Return just the object name."
)

// ScanResult 影像辨識出的商品屬性
type ScanResult struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Style       string `json:"style"`
	Description string `json:"description"`
}

// LiveScanResult success-shaped, 辨識失敗時Detected為nil
type LiveScanResult struct {
	Success  bool    `json:"success"`
	Detected *string `json:"detected"`
}

type RecommendationQuery struct {
	UserQuery   string `json:"userQuery"`
	Budget      string `json:"budget"`
	Category    string `json:"category"`
	Preferences string `json:"preferences"`
}

type SizeQuery struct {
	Height        string `json:"height"`
	Weight        string `json:"weight"`
	BodyType      string `json:"bodyType"`
	ProductType   string `json:"productType"`
	FitPreference string `json:"fitPreference"`
}

type ChatReply struct {
	Text      string    `json:"data"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type IAIService interface {
	ScanProduct(ctx context.Context, imageBase64, mimeType string) (*ScanResult, error)
	SearchSimilar(ctx context.Context, query, category, color, style string) ([]model.Product, error)
	LiveScan(ctx context.Context, frame string) *LiveScanResult
	GetRecommendations(ctx context.Context, q RecommendationQuery) (string, error)
	AnalyzeSearchQuery(ctx context.Context, query string) (string, error)
	DescribeImage(ctx context.Context, imageBase64, mimeType string) (string, error)
	RecommendSize(ctx context.Context, q SizeQuery) (string, error)
	Chat(ctx context.Context, message string, history []string) (*ChatReply, error)
}

type AIService struct {
	gemini      gemini.IGeminiClient
	productRepo db.IProductRepository
}

func NewAIService(geminiClient gemini.IGeminiClient, productRepo db.IProductRepository) *AIService {
	return &AIService{gemini: geminiClient, productRepo: productRepo}
}

// ScanProduct 商品影像辨識, 回傳結構化商品屬性
func (s *AIService) ScanProduct(ctx context.Context, imageBase64, mimeType string) (*ScanResult, error) {
	if imageBase64 == "" {
		return nil, apperr.New(apperr.BadRequestCode, "no image data provided")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	text, err := s.gemini.AnalyzeImage(ctx, scanPrompt, gemini.StripDataURLPrefix(imageBase64), mimeType)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamCode, "failed to analyze image", err)
	}

	var result ScanResult
	if err := json.Unmarshal([]byte(gemini.CleanJSONText(text)), &result); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamCode, "failed to analyze image", err)
	}
	return &result, nil
}

// SearchSimilar 以辨識結果搜尋相似商品
// 先用query全文搜尋, 結果太少時退回首字關鍵字, 有color時把描述相符的排前面
func (s *AIService) SearchSimilar(ctx context.Context, query, category, color, style string) ([]model.Product, error) {
	keyword := strings.TrimSpace(query)
	if keyword == "" {
		keyword = strings.TrimSpace(style)
	}
	if keyword == "" {
		keyword = strings.TrimSpace(category)
	}
	if keyword == "" {
		return nil, apperr.New(apperr.BadRequestCode, "no search criteria provided")
	}

	products, _, err := s.productRepo.SearchProducts(ctx, keyword, 1, visualSearchLimit)
	if err != nil {
		return nil, err
	}

	if len(products) < 3 {
		fallback := strings.Fields(keyword)[0]
		more, _, err := s.productRepo.SearchProducts(ctx, fallback, 1, visualSearchLimit)
		if err == nil {
			seen := make(map[uint]struct{}, len(products))
			for _, p := range products {
				seen[p.ProductID] = struct{}{}
			}
			for _, p := range more {
				if _, ok := seen[p.ProductID]; !ok {
					products = append(products, p)
				}
			}
		}
	}

	if color != "" && len(products) > 0 {
		lower := strings.ToLower(color)
		sort.SliceStable(products, func(i, j int) bool {
			return matchesColor(products[i], lower) && !matchesColor(products[j], lower)
		})
	}

	if len(products) > visualSearchLimit {
		products = products[:visualSearchLimit]
	}
	return products, nil
}

// LiveScan 相機串流用的快速辨識
// 任何上游錯誤一律吞掉回no detection, 不讓串流UI被單一frame卡住
func (s *AIService) LiveScan(ctx context.Context, frame string) *LiveScanResult {
	if frame == "" {
		return &LiveScanResult{Success: false, Detected: nil}
	}

	text, err := s.gemini.AnalyzeImage(ctx, liveScanPrompt, gemini.StripDataURLPrefix(frame), "image/jpeg")
	if err != nil {
		log.Debug().Err(err).Msg("live scan upstream failed")
		return &LiveScanResult{Success: false, Detected: nil}
	}

	detected := strings.TrimSpace(text)
	if detected == "" {
		return &LiveScanResult{Success: false, Detected: nil}
	}
	return &LiveScanResult{Success: true, Detected: &detected}
}

// GetRecommendations 購物推薦, 上游失敗時退回罐頭回覆
func (s *AIService) GetRecommendations(ctx context.Context, q RecommendationQuery) (string, error) {
	prompt := fmt.Sprintf(`You are Zyro AI, the shopping assistant for ZyroKart. Recommend products based on:
User Query: %s
Budget: %s
Category: %s
Preferences: %s

Provide 3-5 product recommendations with:
1. Product name
2. Key features
3. Estimated price range
4. Why it's suitable for the user
5. Alternative options

Format response in JSON-like structure.`,
		q.UserQuery, orAny(q.Budget), orAny(q.Category), orNone(q.Preferences))

	text, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("recommendation upstream failed, using fallback")
		return mockRecommendation(q), nil
	}
	return text, nil
}

// AnalyzeSearchQuery 搜尋意圖分析, 回傳JSON字串
func (s *AIService) AnalyzeSearchQuery(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", apperr.New(apperr.BadRequestCode, "query is required")
	}

	prompt := fmt.Sprintf(`Analyze the following search query for an e-commerce store (ZyroKart): "%s"
Identify the user's intent, specific product categories, potential price range, and key attributes (color, style, brand).
Return a JSON object with keys: intent, categories, priceRange, attributes.`, query)

	text, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamCode, "search analysis failed", err)
	}
	return gemini.CleanJSONText(text), nil
}

func (s *AIService) DescribeImage(ctx context.Context, imageBase64, mimeType string) (string, error) {
	if imageBase64 == "" {
		return "", apperr.New(apperr.BadRequestCode, "image data required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := "Analyze this image. Identify the main fashion item or product. " +
		"Describe its style, color, material, and suitable occasions. Output as a short summary."
	text, err := s.gemini.AnalyzeImage(ctx, prompt, gemini.StripDataURLPrefix(imageBase64), mimeType)
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamCode, "image analysis failed", err)
	}
	return text, nil
}

func (s *AIService) RecommendSize(ctx context.Context, q SizeQuery) (string, error) {
	prompt := fmt.Sprintf(`Recommend a size for a customer with:
Height: %s
Weight: %s
Body Type: %s
Product Type: %s
Fit Preference: %s

Suggest a size (XS, S, M, L, XL, XXL) and explain why based on general sizing standards.`,
		q.Height, q.Weight, q.BodyType, q.ProductType, orDefault(q.FitPreference, "Regular"))

	text, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamCode, "size recommendation failed", err)
	}
	return text, nil
}

// Chat 購物助理對話, 上游失敗時退回罐頭回覆
func (s *AIService) Chat(ctx context.Context, message string, history []string) (*ChatReply, error) {
	if message == "" {
		return nil, apperr.New(apperr.BadRequestCode, "message is required")
	}

	historyJSON, _ := json.Marshal(history)
	prompt := fmt.Sprintf(`You are "Zyro AI" - the shopping assistant for ZyroKart e-commerce platform.
You help users with:
- Product recommendations
- Order tracking
- Size and fit guidance
- Price comparisons
- Product information
- Shopping advice

Be friendly, helpful, Gen Z focused, and concise.
Current conversation history: %s

User Message: "%s"`, historyJSON, message)

	text, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("chat upstream failed, using fallback")
		text = "Hey! Zyro AI is taking a quick break. Meanwhile, check out our trending products or reach support for order queries."
	}

	return &ChatReply{Text: text, Message: message, Timestamp: time.Now()}, nil
}

func matchesColor(p model.Product, color string) bool {
	return strings.Contains(strings.ToLower(p.Name), color) ||
		strings.Contains(strings.ToLower(p.Description), color)
}

func mockRecommendation(q RecommendationQuery) string {
	return fmt.Sprintf(`{"recommendations":[{"name":"Popular picks in %s","features":"Based on your query '%s'","priceRange":"%s","reason":"AI assistant is temporarily unavailable, showing catalog favorites"}]}`,
		orAny(q.Category), q.UserQuery, orAny(q.Budget))
}

func orAny(s string) string {
	return orDefault(s, "Any")
}

func orNone(s string) string {
	return orDefault(s, "None")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
