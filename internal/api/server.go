package api

import "github.com/mukesh-on-github/Zyrokart/internal/api/handler"

type Server struct {
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	WishlistHandler *handler.WishlistHandler
	AddressHandler  *handler.AddressHandler
	UserHandler     *handler.UserHandler
	AIHandler       *handler.AIHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	wishlistHandler *handler.WishlistHandler,
	addressHandler *handler.AddressHandler,
	userHandler *handler.UserHandler,
	aiHandler *handler.AIHandler,
) *Server {
	return &Server{
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		PaymentHandler:  paymentHandler,
		WishlistHandler: wishlistHandler,
		AddressHandler:  addressHandler,
		UserHandler:     userHandler,
		AIHandler:       aiHandler,
	}
}
