package dto

import "github.com/mukesh-on-github/Zyrokart/internal/model"

type OrderItemDTO struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderDTO struct {
	Items           []OrderItemDTO        `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	Notes           string                `json:"notes"`
}

type CancelOrderDTO struct {
	Reason string `json:"reason"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type UpdateSupplierDTO struct {
	SupplierOrderID string `json:"supplierOrderId"`
	SupplierStatus  string `json:"supplierStatus"`
}
