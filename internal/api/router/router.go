package router

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mukesh-on-github/Zyrokart/internal/api"
	m "github.com/mukesh-on-github/Zyrokart/internal/api/middleware"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/auth/firebase_auth"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/ratelimit"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, verifier firebase_auth.IAuthVerifier, adminEmails string, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(verifier))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	admins := strings.Split(adminEmails, ",")

	r.Route("/api/v1", func(r chi.Router) {
		// 商品目錄為公開路由
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/search", server.ProductHandler.SearchProducts)
			r.Get("/featured", server.ProductHandler.ListFeatured)
			r.Get("/trending", server.ProductHandler.ListTrending)
			r.Get("/{id}", server.ProductHandler.GetProduct)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListCategories)
			r.Get("/{slug}", server.ProductHandler.GetCategory)
		})

		// 需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Delete("/", server.CartHandler.ClearCart)
				r.Get("/totals", server.CartHandler.GetTotals)
				r.Post("/items", server.CartHandler.AddItem)
				r.Put("/items/{productId}", server.CartHandler.UpdateItem)
				r.Delete("/items/{productId}", server.CartHandler.RemoveItem)
				r.Post("/apply-coupon", server.CartHandler.ApplyCoupon)
				r.Delete("/remove-coupon", server.CartHandler.RemoveCoupon)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.CreateOrder)
				r.Get("/", server.OrderHandler.ListOrders)
				r.Get("/{orderId}", server.OrderHandler.GetOrder)
				r.Put("/{orderId}/cancel", server.OrderHandler.CancelOrder)
				r.Get("/{orderId}/tracking", server.OrderHandler.GetTracking)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", server.PaymentHandler.CreatePayment)
				r.Post("/verify", server.PaymentHandler.VerifyPayment)
				r.Get("/{id}", server.PaymentHandler.GetPayment)
				r.Get("/order/{orderId}", server.PaymentHandler.GetPaymentByOrder)
				r.With(m.AdminMiddleware(admins)).Post("/{id}/refund", server.PaymentHandler.RefundPayment)
				r.With(m.AdminMiddleware(admins)).Post("/{id}/capture", server.PaymentHandler.CapturePayment)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", server.WishlistHandler.GetWishlist)
				r.Delete("/", server.WishlistHandler.ClearWishlist)
				r.Post("/items", server.WishlistHandler.AddItem)
				r.Delete("/items/{productId}", server.WishlistHandler.RemoveItem)
				r.Post("/items/{productId}/move-to-cart", server.WishlistHandler.MoveToCart)
				r.Get("/suggestions", server.WishlistHandler.GetSuggestions)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", server.AddressHandler.ListAddresses)
				r.Post("/", server.AddressHandler.CreateAddress)
				r.Get("/default", server.AddressHandler.GetDefaultAddress)
				r.Get("/{id}", server.AddressHandler.GetAddress)
				r.Put("/{id}", server.AddressHandler.UpdateAddress)
				r.Delete("/{id}", server.AddressHandler.DeleteAddress)
				r.Put("/{id}/default", server.AddressHandler.SetDefaultAddress)
			})

			r.Route("/users", func(r chi.Router) {
				r.Post("/sync", server.UserHandler.SyncUser)
				r.Get("/me", server.UserHandler.GetProfile)
				r.Put("/me", server.UserHandler.UpdateProfile)
				r.Put("/me/preferences", server.UserHandler.UpdatePreferences)
				r.Post("/me/loyalty", server.UserHandler.AddLoyaltyPoints)
				r.Get("/me/wallet", server.UserHandler.GetWalletBalance)
				r.Post("/me/wallet/topup", server.UserHandler.TopUpWallet)
			})

			// AI路由按user限流, 保護上游模型API的quota
			r.Route("/ai", func(r chi.Router) {
				r.Use(m.RateLimitMiddleware(ratelimit.NewKeyedLimiter(ratelimit.DefaultConfig())))
				r.Post("/lens/scan", server.AIHandler.ScanProduct)
				r.Post("/lens/similar", server.AIHandler.SearchSimilar)
				r.Post("/lens/live", server.AIHandler.LiveScan)
				r.Post("/recommendations", server.AIHandler.GetRecommendations)
				r.Post("/search", server.AIHandler.AnalyzeSearchQuery)
				r.Post("/analyze-image", server.AIHandler.DescribeImage)
				r.Post("/size", server.AIHandler.RecommendSize)
				r.Post("/chat", server.AIHandler.Chat)
			})
		})

		// admin路由
		r.Group(func(r chi.Router) {
			r.Use(m.AdminMiddleware(admins))

			r.Route("/admin", func(r chi.Router) {
				r.Post("/products", server.ProductHandler.CreateProduct)
				r.Put("/products/{id}", server.ProductHandler.UpdateProduct)
				r.Put("/products/{id}/stock", server.ProductHandler.UpdateStock)
				r.Delete("/products/{id}", server.ProductHandler.ArchiveProduct)
				r.Post("/categories", server.ProductHandler.CreateCategory)
				r.Put("/categories/{id}", server.ProductHandler.UpdateCategory)
				r.Delete("/categories/{id}", server.ProductHandler.DeleteCategory)
				r.Get("/orders", server.OrderHandler.ListAllOrders)
				r.Put("/orders/{orderId}/status", server.OrderHandler.UpdateOrderStatus)
				r.Put("/orders/{orderId}/supplier", server.OrderHandler.UpdateSupplierInfo)
				r.Get("/users", server.UserHandler.ListUsers)
				r.Get("/users/{id}", server.UserHandler.GetUser)
				r.Put("/users/{id}/status", server.UserHandler.UpdateUserStatus)
			})
		})
	})

	return r
}
