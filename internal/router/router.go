package router

import (
	"context"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/config"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/handler"
	"github.com/alimarchal/maharat-sub001/internal/middleware"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/query"
	"github.com/alimarchal/maharat-sub001/internal/rbac"
	"github.com/alimarchal/maharat-sub001/internal/repository"
	"github.com/alimarchal/maharat-sub001/internal/service"
	"github.com/alimarchal/maharat-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RoleAdmin may manage users, roles, permissions and other users' settings.
const RoleAdmin = "admin"

// Services are the business services shared by the HTTP layer and the
// worker pool.
type Services struct {
	Auth          service.AuthService
	Notifications service.NotificationSettingsService
	Roles         service.RoleService
	Inventory     service.InventoryService
	RFQ           service.RFQService
	Files         service.FileService
}

// NewServices builds the services on top of their repositories.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, jobs service.Jobs, storage service.Storage) *Services {
	users := repository.NewUserRepository(db)
	var cache service.SettingsCache
	if rdb != nil {
		cache = service.NewRedisSettingsCache(rdb, cfg.SettingsCacheTTL)
	}
	notifications := service.NewNotificationSettingsService(repository.NewNotificationSettingRepository(db), users, cache, jobs)

	return &Services{
		Auth:          service.NewAuthService(users, cfg),
		Notifications: notifications,
		Roles:         service.NewRoleService(repository.NewRoleRepository(db), users, rbac.ParseExpansion(cfg.SubordinateExpansion)),
		Inventory:     service.NewInventoryService(repository.NewInventoryRepository(db), notifications),
		RFQ:           service.NewRFQService(repository.NewCRUDRepository[model.RFQ](db), jobs, cfg.PDFStoragePath),
		Files:         service.NewFileService(repository.NewCRUDRepository[model.File](db), storage, cfg.MaxUploadMB),
	}
}

// crud builds the generic service for one resource.
func crud[T any](db *gorm.DB, allow query.AllowList, hooks service.Hooks[T], opts ...repository.CRUDOption) service.CRUDService[T] {
	return service.NewCRUDService[T](repository.NewCRUDRepository[T](db, opts...), allow, hooks)
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, jobs service.Jobs, svcs *Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiLimiter := middleware.RateLimiter(cfg.RateLimit)
	loginLimiter := middleware.LoginRateLimiter()
	apiLimiter.StartPurger(ctx, 5*time.Minute)
	loginLimiter.StartPurger(ctx, 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(apiLimiter.Middleware())

	paging := query.Paging{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	settingsH := handler.NewNotificationSettingsHandler(svcs.Notifications)
	rolesH := handler.NewRolesHandler(svcs.Roles)
	inventoryH := handler.NewInventoryHandler(svcs.Inventory)
	rfqH := handler.NewRFQHandler(svcs.RFQ)
	filesH := handler.NewFilesHandler(svcs.Files)

	brands := handler.NewResourceHandler[model.Brand, dto.CreateBrandRequest, dto.UpdateBrandRequest](
		"Brand", crud(db, service.BrandAllow, service.Hooks[model.Brand]{}), paging)
	products := handler.NewResourceHandler[model.Product, dto.CreateProductRequest, dto.UpdateProductRequest](
		"Product", crud(db, service.ProductAllow, service.Hooks[model.Product]{}), paging)
	statuses := handler.NewResourceHandler[model.Status, dto.CreateStatusRequest, dto.UpdateStatusRequest](
		"Status", crud(db, service.StatusAllow, service.Hooks[model.Status]{}), paging)
	warehouses := handler.NewResourceHandler[model.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest](
		"Warehouse", crud(db, service.WarehouseAllow, service.Hooks[model.Warehouse]{}), paging)
	inventories := handler.NewResourceHandler[model.Inventory, dto.CreateInventoryRequest, dto.UpdateInventoryRequest](
		"Inventory", crud(db, service.InventoryAllow, service.Hooks[model.Inventory]{},
			repository.WithReadOnlyColumns("quantity", "product_id", "warehouse_id")), paging)
	transactions := handler.NewBaseHandler[model.InventoryTransaction](
		"Inventory transaction", crud(db, service.InventoryTransactionAllow, service.Hooks[model.InventoryTransaction]{}), paging)
	transfers := handler.NewResourceHandler[model.InventoryTransfer, dto.CreateTransferRequest, dto.UpdateTransferRequest](
		"Inventory transfer", crud(db, service.InventoryTransferAllow, service.TransferHooks(),
			repository.WithReadOnlyColumns("finalized_at", "finalized_by"),
			repository.WithRowGuard("finalized_at IS NULL", service.ErrTransferFinalized)), paging)
	suppliers := handler.NewResourceHandler[model.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest](
		"Supplier", crud(db, service.SupplierAllow, service.Hooks[model.Supplier]{}), paging)
	contacts := handler.NewResourceHandler[model.SupplierContact, dto.CreateSupplierContactRequest, dto.UpdateSupplierContactRequest](
		"Supplier contact", crud(db, service.SupplierContactAllow, service.Hooks[model.SupplierContact]{}), paging)
	rfqs := handler.NewResourceHandler[model.RFQ, dto.CreateRFQRequest, dto.UpdateRFQRequest](
		"RFQ", crud(db, service.RFQAllow, service.Hooks[model.RFQ]{}), paging)
	rfqItems := handler.NewResourceHandler[model.RFQItem, dto.CreateRFQItemRequest, dto.UpdateRFQItemRequest](
		"RFQ item", crud(db, service.RFQItemAllow, service.Hooks[model.RFQItem]{}), paging)
	fiscalYears := handler.NewResourceHandler[model.FiscalYear, dto.CreateFiscalYearRequest, dto.UpdateFiscalYearRequest](
		"Fiscal year", crud(db, service.FiscalYearAllow, service.FiscalYearHooks()), paging)
	accountCodes := handler.NewResourceHandler[model.AccountCode, dto.CreateAccountCodeRequest, dto.UpdateAccountCodeRequest](
		"Account code", crud(db, service.AccountCodeAllow, service.AccountCodeHooks(repository.NewCRUDRepository[model.AccountCode](db))), paging)
	notificationTypes := handler.NewResourceHandler[model.NotificationType, dto.CreateNotificationTypeRequest, dto.UpdateNotificationTypeRequest](
		"Notification type", crud(db, service.NotificationTypeAllow, service.CatalogHooks[model.NotificationType](svcs.Notifications)), paging)
	notificationChannels := handler.NewResourceHandler[model.NotificationChannel, dto.CreateNotificationChannelRequest, dto.UpdateNotificationChannelRequest](
		"Notification channel", crud(db, service.NotificationChannelAllow, service.CatalogHooks[model.NotificationChannel](svcs.Notifications)), paging)
	permissions := handler.NewResourceHandler[model.Permission, dto.CreatePermissionRequest, dto.UpdatePermissionRequest](
		"Permission", crud(db, service.PermissionAllow, service.Hooks[model.Permission]{}), paging)
	roles := handler.NewResourceHandler[model.Role, dto.CreateRoleRequest, dto.UpdateRoleRequest](
		"Role", crud(db, service.RoleAllow, service.Hooks[model.Role]{}), paging)
	users := handler.NewResourceHandler[model.User, dto.CreateUserRequest, dto.UpdateUserRequest](
		"User", crud(db, service.UserAllow, service.UserHooks(jobs)), paging)
	files := handler.NewBaseHandler[model.File](
		"File", crud(db, service.FileAllow, svcs.Files.Hooks()), paging)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, worker.Queues...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/auth/login", loginLimiter.Middleware(), authH.Login)

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		brands.Register(v1.Group("/brands"))
		products.Register(v1.Group("/products"))
		statuses.Register(v1.Group("/statuses"))
		warehouses.Register(v1.Group("/warehouses"))
		suppliers.Register(v1.Group("/suppliers"))
		contacts.Register(v1.Group("/supplier-contacts"))
		rfqItems.Register(v1.Group("/rfq-items"))
		fiscalYears.Register(v1.Group("/fiscal-years"))
		accountCodes.Register(v1.Group("/account-codes"))
		notificationTypes.Register(v1.Group("/notification-types"))
		notificationChannels.Register(v1.Group("/notification-channels"))

		inv := v1.Group("/inventories")
		{
			inv.GET("", inventories.List)
			inv.GET("/:id", inventories.Show)
			inv.POST("", inventoryH.Create)
			inv.PUT("/:id", inventories.Update)
			inv.DELETE("/:id", inventories.Delete)
			inv.POST("/:id/adjust", inventoryH.Adjust)
		}

		txs := v1.Group("/inventory-transactions")
		{
			txs.GET("", transactions.List)
			txs.GET("/:id", transactions.Show)
		}

		tr := v1.Group("/inventory-transfers")
		transfers.Register(tr)
		tr.POST("/:id/finalize", inventoryH.FinalizeTransfer)

		rfq := v1.Group("/rfqs")
		rfqs.Register(rfq)
		rfq.GET("/:id/pdf", rfqH.PDF)
		rfq.POST("/:id/send", rfqH.Send)

		f := v1.Group("/files")
		{
			f.GET("", files.List)
			f.GET("/:id", files.Show)
			f.POST("/upload", filesH.Upload)
			f.DELETE("/:id", files.Delete)
		}

		// Current user
		v1.GET("/me/subordinates", rolesH.Subordinates)
		v1.GET("/notification-settings", settingsH.Get)
		v1.PUT("/notification-settings", settingsH.Update)
		v1.POST("/notification-settings/defaults", settingsH.SetupDefaults)

		// Access management — admin only
		admin := v1.Group("", middleware.RequireRole(RoleAdmin))
		{
			permissions.Register(admin.Group("/permissions"))

			rg := admin.Group("/roles")
			roles.Register(rg)
			rg.PUT("/:id/subordinates", rolesH.SyncSubordinates)
			rg.PUT("/:id/permissions", rolesH.SyncPermissions)

			ug := admin.Group("/users")
			users.Register(ug)
			ug.PUT("/:id/roles", rolesH.SyncUserRoles)
			ug.GET("/:id/subordinates", rolesH.Subordinates)
			ug.GET("/:id/notification-settings", settingsH.Get)
			ug.PUT("/:id/notification-settings", settingsH.Update)
			ug.POST("/:id/notification-settings/defaults", settingsH.SetupDefaults)
		}
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
