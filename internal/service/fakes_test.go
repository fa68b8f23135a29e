package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/event"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/gateway"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 記憶體版repository, 行為對齊DB實作: 找不到回gorm.ErrRecordNotFound,
// 各fake提供err欄位做單點故障注入

type fakeProductRepo struct {
	products       map[uint]*model.Product
	nextID         uint
	adjustStockErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*model.Product{}, nextID: 1}
}

func (f *fakeProductRepo) seed(p model.Product) *model.Product {
	if p.ProductID == 0 {
		p.ProductID = f.nextID
	}
	if p.ProductID >= f.nextID {
		f.nextID = p.ProductID + 1
	}
	if p.Status == "" {
		p.Status = model.ProductStatusActive
	}
	f.products[p.ProductID] = &p
	return f.products[p.ProductID]
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) error {
	product.ProductID = f.nextID
	f.nextID++
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context, _ db.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) SearchProducts(_ context.Context, keyword string, _, limit int) ([]model.Product, int64, error) {
	lower := strings.ToLower(keyword)
	var out []model.Product
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) ||
			strings.Contains(strings.ToLower(p.Category), lower) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ListByCategories(_ context.Context, categories []string, excludeIDs []uint, limit int) ([]model.Product, error) {
	excluded := map[uint]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	wanted := map[string]bool{}
	for _, c := range categories {
		wanted[c] = true
	}
	var out []model.Product
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if wanted[p.Category] && !excluded[p.ProductID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListTrending(_ context.Context, excludeIDs []uint, limit int) ([]model.Product, error) {
	excluded := map[uint]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []model.Product
	for _, p := range f.products {
		if len(out) >= limit {
			break
		}
		if p.Trending && !excluded[p.ProductID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product *model.Product) error {
	if _, ok := f.products[product.ProductID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *product
	f.products[product.ProductID] = &clone
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, productID uint, delta int) error {
	if f.adjustStockErr != nil {
		return f.adjustStockErr
	}
	p, ok := f.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (f *fakeProductRepo) ArchiveProduct(_ context.Context, productID uint) error {
	p, ok := f.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.ProductStatusArchived
	return nil
}

type fakeCartRepo struct {
	carts  map[string]*model.Cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*model.Cart{}, nextID: 1}
}

func (f *fakeCartRepo) byID(cartID uint) *model.Cart {
	for _, c := range f.carts {
		if c.CartID == cartID {
			return c
		}
	}
	return nil
}

func (f *fakeCartRepo) CreateCart(_ context.Context, cart *model.Cart) error {
	cart.CartID = f.nextID
	f.nextID++
	f.carts[cart.UserUID] = cart
	return nil
}

func (f *fakeCartRepo) GetCartByUser(_ context.Context, userUID string) (*model.Cart, error) {
	c, ok := f.carts[userUID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	clone.Items = append([]model.CartItem(nil), c.Items...)
	return &clone, nil
}

func (f *fakeCartRepo) UpsertItem(_ context.Context, item *model.CartItem) error {
	cart := f.byID(item.CartID)
	if cart == nil {
		return gorm.ErrRecordNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i] = *item
			return nil
		}
	}
	cart.Items = append(cart.Items, *item)
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, cartID, productID uint, quantity int) error {
	cart := f.byID(cartID)
	if cart == nil {
		return gorm.ErrRecordNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, cartID, productID uint) error {
	cart := f.byID(cartID)
	if cart == nil {
		return gorm.ErrRecordNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) ClearCart(_ context.Context, cartID uint) error {
	cart := f.byID(cartID)
	if cart == nil {
		return gorm.ErrRecordNotFound
	}
	cart.Items = nil
	cart.CouponCode = ""
	cart.CouponDiscount = decimal.Zero
	return nil
}

func (f *fakeCartRepo) UpdateCartMeta(_ context.Context, cart *model.Cart) error {
	stored := f.byID(cart.CartID)
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	stored.CouponCode = cart.CouponCode
	stored.CouponDiscount = cart.CouponDiscount
	stored.Total = cart.Total
	stored.LastUpdated = cart.LastUpdated
	return nil
}

type fakeOrderRepo struct {
	orders  map[string]*model.Order
	nextSeq int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*model.Order{}, nextSeq: 1}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *model.Order) error {
	// DB實作由BeforeCreate hook取號, fake在這裡補號
	if order.OrderNumber == "" {
		order.OrderNumber = fmt.Sprintf("ZK%06d", f.nextSeq)
	}
	order.OrderID = uint(f.nextSeq)
	order.CreatedAt = time.Now()
	f.nextSeq++
	f.orders[order.OrderNumber] = order
	return nil
}

func (f *fakeOrderRepo) GetOrderByNumber(_ context.Context, orderNumber string) (*model.Order, error) {
	o, ok := f.orders[orderNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) GetUserOrderByNumber(_ context.Context, userUID, orderNumber string) (*model.Order, error) {
	o, ok := f.orders[orderNumber]
	if !ok || o.UserUID != userUID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) ListOrdersByUser(_ context.Context, userUID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserUID == userUID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAllOrders(_ context.Context, status model.OrderStatus, _, _ int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateOrder(_ context.Context, order *model.Order) error {
	if _, ok := f.orders[order.OrderNumber]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *order
	f.orders[order.OrderNumber] = &clone
	return nil
}

type fakePaymentRepo struct {
	payments map[string]*model.Payment
	nextSeq  int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*model.Payment{}, nextSeq: 1}
}

func (f *fakePaymentRepo) CreatePayment(_ context.Context, payment *model.Payment) error {
	if payment.PaymentNumber == "" {
		payment.PaymentNumber = fmt.Sprintf("ZKPAY%06d", f.nextSeq)
	}
	payment.ID = uint(f.nextSeq)
	f.nextSeq++
	f.payments[payment.PaymentNumber] = payment
	return nil
}

func (f *fakePaymentRepo) GetPaymentByNumber(_ context.Context, paymentNumber string) (*model.Payment, error) {
	p, ok := f.payments[paymentNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePaymentRepo) GetPaymentByOrderID(_ context.Context, orderID uint) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) UpdatePayment(_ context.Context, payment *model.Payment) error {
	if _, ok := f.payments[payment.PaymentNumber]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *payment
	f.payments[payment.PaymentNumber] = &clone
	return nil
}

type fakeWishlistRepo struct {
	wishlists map[string]*model.Wishlist
	nextID    uint
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{wishlists: map[string]*model.Wishlist{}, nextID: 1}
}

func (f *fakeWishlistRepo) byID(wishlistID uint) *model.Wishlist {
	for _, w := range f.wishlists {
		if w.WishlistID == wishlistID {
			return w
		}
	}
	return nil
}

func (f *fakeWishlistRepo) CreateWishlist(_ context.Context, wishlist *model.Wishlist) error {
	wishlist.WishlistID = f.nextID
	f.nextID++
	f.wishlists[wishlist.UserUID] = wishlist
	return nil
}

func (f *fakeWishlistRepo) GetWishlistByUser(_ context.Context, userUID string) (*model.Wishlist, error) {
	w, ok := f.wishlists[userUID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *w
	clone.Items = append([]model.WishlistItem(nil), w.Items...)
	return &clone, nil
}

func (f *fakeWishlistRepo) UpsertItem(_ context.Context, item *model.WishlistItem) error {
	w := f.byID(item.WishlistID)
	if w == nil {
		return gorm.ErrRecordNotFound
	}
	for i := range w.Items {
		if w.Items[i].ProductID == item.ProductID {
			w.Items[i] = *item
			return nil
		}
	}
	w.Items = append(w.Items, *item)
	return nil
}

func (f *fakeWishlistRepo) DeleteItem(_ context.Context, wishlistID, productID uint) error {
	w := f.byID(wishlistID)
	if w == nil {
		return gorm.ErrRecordNotFound
	}
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWishlistRepo) ClearWishlist(_ context.Context, wishlistID uint) error {
	w := f.byID(wishlistID)
	if w == nil {
		return gorm.ErrRecordNotFound
	}
	w.Items = nil
	return nil
}

func (f *fakeWishlistRepo) UpdateWishlistMeta(_ context.Context, wishlist *model.Wishlist) error {
	stored := f.byID(wishlist.WishlistID)
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	stored.TotalItemsAdded = wishlist.TotalItemsAdded
	stored.ItemsPurchased = wishlist.ItemsPurchased
	stored.IsPublic = wishlist.IsPublic
	stored.LastUpdated = wishlist.LastUpdated
	return nil
}

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.UserID = f.nextID
	f.nextID++
	f.users[user.FirebaseUID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*model.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.UserID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ListUsers(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.FirebaseUID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	f.users[user.FirebaseUID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateUserStatus(_ context.Context, id uint, status model.UserStatus) error {
	for _, u := range f.users {
		if u.UserID == id {
			u.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeGatewayClient 可注入建單/驗證/退款結果
type fakeGatewayClient struct {
	createResult *gateway.CreateOrderResult
	createErr    error
	verifyOK     bool
	verifyErr    error
	refundErr    error
	captureErr   error
	createCalls  int
}

func (f *fakeGatewayClient) CreateOrder(_ context.Context, _ *model.Order, _ *model.Payment) (*gateway.CreateOrderResult, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	return &gateway.CreateOrderResult{GatewayOrderID: "gw_order_1"}, nil
}

func (f *fakeGatewayClient) Verify(_ context.Context, _ *model.Payment, _ gateway.Callback) (bool, error) {
	return f.verifyOK, f.verifyErr
}

func (f *fakeGatewayClient) Capture(_ context.Context, _ *model.Payment) error {
	return f.captureErr
}

func (f *fakeGatewayClient) Refund(_ context.Context, _ *model.Payment, _ decimal.Decimal, _ string) (*gateway.RefundResult, error) {
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return &gateway.RefundResult{RefundID: "rfnd_1", Status: "processed"}, nil
}

// fakeProducer 記錄發佈過的事件型別
type fakeProducer struct {
	published []event.Event
}

func (f *fakeProducer) Publish(_ context.Context, evt event.Event) error {
	f.published = append(f.published, evt)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func (f *fakeProducer) types() []string {
	out := make([]string, 0, len(f.published))
	for _, e := range f.published {
		out = append(out, string(e.Type()))
	}
	return out
}
