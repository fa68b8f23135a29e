package dto

type AddWishlistItemDTO struct {
	ProductID uint   `json:"productId"`
	Notes     string `json:"notes"`
	Priority  string `json:"priority"`
}
