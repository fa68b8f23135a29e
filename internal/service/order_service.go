package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/mukesh-on-github/Zyrokart/internal/event"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/producer"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/redis_repo"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotCancelable = errors.New("order can not be cancelled")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// CreateOrderInput 下單請求, items為下單當下要買的品項
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress model.ShippingAddress
	PaymentMethod   model.PaymentMethod
	Notes           string
}

type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

type IOrderService interface {
	CreateOrder(ctx context.Context, userUID string, input CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, userUID, orderNumber string) (*model.Order, error)
	ListOrders(ctx context.Context, userUID string) ([]model.Order, error)
	CancelOrder(ctx context.Context, userUID, orderNumber, reason string) (*model.Order, error)
	GetTracking(ctx context.Context, userUID, orderNumber string) (*model.TrackingInfo, error)
	ListAllOrders(ctx context.Context, status string, page, limit int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderNumber, status string) (*model.Order, error)
	UpdateSupplierInfo(ctx context.Context, orderNumber, supplierOrderID, supplierStatus string) (*model.Order, error)
}

type OrderService struct {
	orderRepo    db.IOrderRepository
	productRepo  db.IProductRepository
	cartRepo     db.ICartRepository
	productCache redis_repo.IProductCacheRepository
	producer     producer.IOrderEventProducer
}

func NewOrderService(orderRepo db.IOrderRepository, productRepo db.IProductRepository,
	cartRepo db.ICartRepository, productCache redis_repo.IProductCacheRepository,
	eventProducer producer.IOrderEventProducer) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		productCache: productCache,
		producer:     eventProducer,
	}
}

// 庫存異動後清掉商品快取, 不然read-through會讀到TTL內的舊庫存
func (s *OrderService) invalidateProduct(ctx context.Context, productID uint) {
	if s.productCache == nil {
		return
	}
	if err := s.productCache.DeleteProduct(ctx, productID); err != nil {
		log.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidation failed")
	}
}

// CreateOrder 下單
// 逐項對live庫存驗證, 任一項失敗整張單不建立
// 建單後逐項扣庫存並清空購物車, 這兩步不在同一個transaction內
func (s *OrderService) CreateOrder(ctx context.Context, userUID string, input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.Wrap(apperr.BadRequestCode, "order must contain at least one item", ErrEmptyOrder)
	}
	if !model.IsValidPaymentMethod(string(input.PaymentMethod)) {
		return nil, apperr.Newf(apperr.BadRequestCode, "invalid payment method: %s", input.PaymentMethod)
	}

	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, apperr.Wrap(apperr.BadRequestCode, "quantity must be at least 1", ErrInvalidQuantity)
		}
		product, err := s.productRepo.GetProductByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Wrap(apperr.NotFoundCode,
					fmt.Sprintf("product %d not found", in.ProductID), ErrProductNotFound)
			}
			return nil, err
		}
		if product.Stock < in.Quantity {
			return nil, apperr.Wrap(apperr.BadRequestCode,
				fmt.Sprintf("insufficient stock for %s, only %d left", product.Name, product.Stock),
				ErrInsufficientStock)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.MainImage(),
			Price:     product.Price,
			Quantity:  in.Quantity,
		})
	}

	shippingFee := decimal.Zero
	if subtotal.LessThanOrEqual(decimal.NewFromInt(constants.FreeShippingThreshold)) {
		shippingFee = decimal.NewFromInt(constants.FlatShippingFee)
	}
	tax := subtotal.Mul(decimal.NewFromInt(constants.TaxRatePercent)).
		Div(decimal.NewFromInt(100)).Round(0)
	total := subtotal.Add(shippingFee).Add(tax).Round(0)

	order := &model.Order{
		UserUID:         userUID,
		Items:           orderItems,
		Status:          model.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Tax:             tax,
		Total:           total,
		Carrier:         constants.DefaultCarrier,
		Notes:           input.Notes,
	}
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			log.Error().Err(err).Uint("product_id", item.ProductID).
				Str("order_number", order.OrderNumber).Msg("decrement stock failed")
			continue
		}
		s.invalidateProduct(ctx, item.ProductID)
	}

	if cart, err := s.cartRepo.GetCartByUser(ctx, userUID); err == nil {
		if err := s.cartRepo.ClearCart(ctx, cart.CartID); err != nil {
			log.Error().Err(err).Str("user_uid", userUID).Msg("clear cart after order failed")
		}
	}

	s.publish(ctx, &event.OrderCreatedEvent{
		BaseEvent:   producer.NewBaseEvent(event.OrderCreatedEventName, order.OrderNumber),
		OrderNumber: order.OrderNumber,
		UserUID:     userUID,
		Total:       order.Total,
		Items:       toEventItems(order.Items),
	})

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userUID, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.GetUserOrderByNumber(ctx, userUID, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userUID string) ([]model.Order, error) {
	return s.orderRepo.ListOrdersByUser(ctx, userUID)
}

// CancelOrder 取消訂單並回補庫存
// shipped/delivered/cancelled不可取消
func (s *OrderService) CancelOrder(ctx context.Context, userUID, orderNumber, reason string) (*model.Order, error) {
	order, err := s.orderRepo.GetUserOrderByNumber(ctx, userUID, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}

	if !order.CanCancel() {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("order in status %s can not be cancelled", order.Status), ErrOrderNotCancelable)
	}

	if reason == "" {
		reason = "User cancelled"
	}
	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Error().Err(err).Uint("product_id", item.ProductID).
				Str("order_number", order.OrderNumber).Msg("restore stock failed")
			continue
		}
		s.invalidateProduct(ctx, item.ProductID)
	}

	s.publish(ctx, &event.OrderCancelledEvent{
		BaseEvent:   producer.NewBaseEvent(event.OrderCancelledEventName, order.OrderNumber),
		OrderNumber: order.OrderNumber,
		Reason:      reason,
	})

	return order, nil
}

func (s *OrderService) GetTracking(ctx context.Context, userUID, orderNumber string) (*model.TrackingInfo, error) {
	order, err := s.GetOrder(ctx, userUID, orderNumber)
	if err != nil {
		return nil, err
	}
	info := order.Tracking()
	return &info, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, status string, page, limit int) ([]model.Order, int64, error) {
	if status != "" && !model.IsValidOrderStatus(status) {
		return nil, 0, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("invalid order status: %s", status), ErrInvalidOrderStatus)
	}
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	return s.orderRepo.ListAllOrders(ctx, model.OrderStatus(status), page, limit)
}

// UpdateOrderStatus admin直接指定狀態, 不檢查轉移路徑
// shipped補出貨資訊, delivered補送達時間並視為已付款
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderNumber, status string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("invalid order status: %s", status), ErrInvalidOrderStatus)
	}

	order, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}

	previous := order.Status
	order.Status = model.OrderStatus(status)

	switch order.Status {
	case model.OrderStatusShipped:
		if order.TrackingNumber == "" {
			order.TrackingNumber = fmt.Sprintf("TRK%d", time.Now().UnixMilli())
		}
		order.Carrier = constants.DefaultCarrier
		eta := time.Now().AddDate(0, 0, 3)
		order.EstimatedDelivery = &eta
	case model.OrderStatusDelivered:
		now := time.Now()
		order.DeliveredAt = &now
		order.IsPaid = true
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, &event.OrderStatusChangedEvent{
		BaseEvent:   producer.NewBaseEvent(event.OrderStatusChangedEventName, order.OrderNumber),
		OrderNumber: order.OrderNumber,
		FromStatus:  previous,
		ToStatus:    order.Status,
	})

	return order, nil
}

// UpdateSupplierInfo admin掛上供應商出貨單資訊
func (s *OrderService) UpdateSupplierInfo(ctx context.Context, orderNumber, supplierOrderID, supplierStatus string) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}

	if supplierOrderID != "" {
		order.SupplierOrderID = supplierOrderID
	}
	if supplierStatus != "" {
		order.SupplierStatus = supplierStatus
	}
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// publish fire-and-forget, 事件發佈失敗不影響主流程
func (s *OrderService) publish(ctx context.Context, e event.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, e); err != nil {
		log.Error().Err(err).Str("event_type", string(e.Type())).Msg("publish order event failed")
	}
}

func toEventItems(items []model.OrderItem) []event.OrderItemData {
	out := make([]event.OrderItemData, 0, len(items))
	for _, item := range items {
		out = append(out, event.OrderItemData{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return out
}
