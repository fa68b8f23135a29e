package constants

const (
	//分頁
	DefaultPage     int = 1
	DefaultPageSize int = 20
)

// 金額計算規則
const (
	FreeShippingThreshold = 500 //訂單小計超過此金額免運
	FlatShippingFee       = 40
	TaxRatePercent        = 18 // GST
)

// 訂單/付款編號前綴
const (
	OrderNumberPrefix   = "ZK"
	PaymentNumberPrefix = "ZKPAY"
	DefaultCarrier      = "Zyro Express"
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
