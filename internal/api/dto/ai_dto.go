package dto

type ScanProductDTO struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

type SimilarSearchDTO struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Style    string `json:"style"`
}

type LiveScanDTO struct {
	Frame string `json:"frame"`
}

type RecommendationDTO struct {
	UserQuery   string `json:"userQuery"`
	Budget      string `json:"budget"`
	Category    string `json:"category"`
	Preferences string `json:"preferences"`
}

type AISearchDTO struct {
	Query string `json:"query"`
}

type AnalyzeImageDTO struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
}

type SizeRecommendationDTO struct {
	Height        string `json:"height"`
	Weight        string `json:"weight"`
	BodyType      string `json:"bodyType"`
	ProductType   string `json:"productType"`
	FitPreference string `json:"fitPreference"`
}

type ChatDTO struct {
	Message     string   `json:"message"`
	ChatHistory []string `json:"chatHistory"`
}
