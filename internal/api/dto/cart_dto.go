package dto

type AddCartItemDTO struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"`
}

type ApplyCouponDTO struct {
	Code string `json:"code"`
}
