package appcontext

import (
	"context"
	"log"
	"strings"

	"github.com/mukesh-on-github/Zyrokart/internal/config"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/ai/gemini"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/auth/firebase_auth"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/gateway"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/producer"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/redis_repo"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf           *config.Config
	DbConn       *gorm.DB
	DbDao        *db.DbDao
	RedisClient  *redis.Client
	AuthVerifier firebase_auth.IAuthVerifier
	GeminiClient gemini.IGeminiClient
	Gateways     gateway.Registry
	Producer     producer.IOrderEventProducer

	ProductService  service.IProductService
	CategoryService service.ICategoryService
	CartService     service.ICartService
	OrderService    service.IOrderService
	PaymentService  service.IPaymentService
	WishlistService service.IWishlistService
	AddressService  service.IAddressService
	UserService     service.IUserService
	AIService       service.IAIService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpDbDao(); err != nil {
		return err
	}
	app.setUpRedis()
	app.setUpAuthVerifier()
	app.setUpGeminiClient()
	app.setUpGateways()
	app.setUpProducer()
	app.setUpServices()
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewDbDao(app.DbConn)
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() {
	if app.Cf.RedisAddr == "" {
		log.Printf("Redis not configured, product cache disabled")
		return
	}
	log.Printf("Start setup redis client")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	log.Printf("Finish setup redis client")
}

func (app *ApplicationContext) setUpAuthVerifier() {
	app.AuthVerifier = firebase_auth.NewFirebaseAuthVerifier(app.Cf.FirebaseProjectID)
}

func (app *ApplicationContext) setUpGeminiClient() {
	app.GeminiClient = gemini.NewGeminiClient(app.Cf.GeminiAPIKey, app.Cf.GeminiModel)
}

func (app *ApplicationContext) setUpGateways() {
	app.Gateways = gateway.Registry{
		model.GatewayRazorpay: gateway.NewRazorpayClient(app.Cf.RazorpayKeyID, app.Cf.RazorpayKeySecret),
		model.GatewayStripe:   gateway.NewStripeClient(app.Cf.StripeSecretKey),
		model.GatewayCOD:      gateway.NewCODClient(),
	}
}

func (app *ApplicationContext) setUpProducer() {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("Kafka not configured, order events disabled")
		app.Producer = producer.NoopOrderEventProducer{}
		return
	}
	log.Printf("Start setup kafka producer")
	app.Producer = producer.NewOrderEventProducer(strings.Split(app.Cf.KafkaBrokers, ","), app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup kafka producer")
}

func (app *ApplicationContext) setUpServices() {
	productRepo := db.NewProductRepo(app.DbDao)
	categoryRepo := db.NewCategoryRepo(app.DbDao)
	cartRepo := db.NewCartRepo(app.DbDao)
	orderRepo := db.NewOrderRepo(app.DbDao)
	paymentRepo := db.NewPaymentRepo(app.DbDao)
	wishlistRepo := db.NewWishlistRepo(app.DbDao)
	addressRepo := db.NewAddressRepo(app.DbDao)
	userRepo := db.NewUserRepo(app.DbDao)

	var productCache redis_repo.IProductCacheRepository
	if app.RedisClient != nil {
		productCache = redis_repo.NewProductCacheRepo(app.RedisClient)
	}

	app.ProductService = service.NewProductService(productRepo, productCache)
	app.CategoryService = service.NewCategoryService(categoryRepo)
	app.CartService = service.NewCartService(cartRepo, productRepo)
	app.OrderService = service.NewOrderService(orderRepo, productRepo, cartRepo, productCache, app.Producer)
	app.PaymentService = service.NewPaymentService(paymentRepo, orderRepo, app.Gateways)
	app.WishlistService = service.NewWishlistService(wishlistRepo, productRepo, app.CartService)
	app.AddressService = service.NewAddressService(addressRepo)
	app.UserService = service.NewUserService(userRepo)
	app.AIService = service.NewAIService(app.GeminiClient, productRepo)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			log.Printf("kafka producer close error: %v", err)
		}
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}
	if app.DbConn != nil {
		if sqlDB, err := app.DbConn.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("db close error: %v", err)
			}
		}
	}
	return nil
}
