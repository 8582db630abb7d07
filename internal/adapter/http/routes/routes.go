package routes

import (
	"context"
	"log"
	"os"
	"time"

	_ "montage_service/docs"
	"montage_service/internal/adapter/http/handlers"
	"montage_service/internal/adapter/http/middleware"
	"montage_service/internal/adapter/persistence/repository"
	"montage_service/internal/infrastructure/auth"
	"montage_service/internal/infrastructure/database"
	"montage_service/internal/infrastructure/logging"
	"montage_service/internal/infrastructure/notifications"
	"montage_service/internal/infrastructure/payments"
	"montage_service/internal/infrastructure/storage"
	"montage_service/internal/infrastructure/workflowconfig"
	"montage_service/internal/usecase"
	"montage_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

const defaultPort = "8080"

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

type handlerSet struct {
	montages  *handlers.MontageHandler
	checklist *handlers.ChecklistHandler
	customers *handlers.CustomerHandler
	orders    *handlers.OrderHandler
}

func getRoutes() {
	ctx := context.Background()

	cfg, err := workflowconfig.Load(os.Getenv("WORKFLOW_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load workflow configuration: %v", err)
	}
	awsCfg, err := database.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("failed to create aws config: %v", err)
	}
	ddb := database.ConnectDynamoDB(awsCfg)

	montageRepo := repository.NewMontageDynamoRepository(ddb)
	checklistRepo := repository.NewChecklistDynamoRepository(ddb)
	customerRepo := repository.NewCustomerDynamoRepository(ddb)
	orderRepo := repository.NewOrderDynamoRepository(ddb)
	auditRepo := repository.NewAuditLogDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), cfg.MeasurementService().Currency)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	var tokenIssuer interfaces.IAccessTokenIssuer
	issuer, err := auth.NewTokenIssuer(customerTokenSecret(), customerTokenTTL())
	if err != nil {
		log.Printf("customer access tokens disabled: %v", err)
	} else {
		tokenIssuer = issuer
	}

	engine := usecase.NewTransitionUseCase(usecase.TransitionDependencies{
		Config:      cfg,
		Montages:    montageRepo,
		Checklist:   checklistRepo,
		Attachments: storage.NewS3AttachmentFinder(awsCfg),
		Rates:       repository.NewUserRatesDynamoRepository(ddb),
		Settlements: repository.NewSettlementDynamoRepository(ddb),
		Commissions: repository.NewCommissionDynamoRepository(ddb),
		Audit:       auditRepo,
		Calendar:    repository.NewCalendarEventDynamoRepository(ddb),
		Notifier:    notifications.NewNotifier(cfg, awsCfg),
		Customers:   customerRepo,
	})

	h := handlerSet{
		montages: handlers.NewMontageHandler(
			usecase.NewMontageUseCase(cfg, montageRepo, checklistRepo, customerRepo, auditRepo),
			engine,
			usecase.NewLeadConversionUseCase(cfg, montageRepo, customerRepo, orderRepo, paymentGateway, tokenIssuer, engine),
		),
		checklist: handlers.NewChecklistHandler(usecase.NewChecklistUseCase(cfg, checklistRepo, montageRepo, engine)),
		customers: handlers.NewCustomerHandler(usecase.NewCustomerUseCase(customerRepo)),
		orders:    handlers.NewOrderHandler(usecase.NewOrderPaymentUseCase(orderRepo, paymentGateway, engine)),
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMontageRoutes(v1, h)
}

func setMiddlewares() {
	router.Use(logging.JSONLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(middleware.OptionalActor(os.Getenv("JWT_SECRET")))
}

func customerTokenSecret() string {
	if v := os.Getenv("CUSTOMER_TOKEN_SECRET"); v != "" {
		return v
	}
	return os.Getenv("JWT_SECRET")
}

func customerTokenTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("CUSTOMER_TOKEN_TTL"))
	if err != nil {
		return 0
	}
	return d
}
