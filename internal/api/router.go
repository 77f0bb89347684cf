package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/greenfield-farms/farm-manager/docs"
	"github.com/greenfield-farms/farm-manager/internal/api/handler"
	"github.com/greenfield-farms/farm-manager/internal/api/middleware"
	"github.com/greenfield-farms/farm-manager/internal/core/access"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
	"github.com/greenfield-farms/farm-manager/internal/core/service"
	mongostore "github.com/greenfield-farms/farm-manager/internal/infrastructure/db/mongo"
	redisstore "github.com/greenfield-farms/farm-manager/internal/infrastructure/db/redis"
	"github.com/greenfield-farms/farm-manager/internal/infrastructure/http/handlers"
	"github.com/greenfield-farms/farm-manager/internal/pkg/config"
)

// Services is everything the router serves. BuildServices wires the real
// stores; tests pass stubs.
type Services struct {
	Auth      ports.AuthService
	Dashboard ports.DashboardService
	Registry  *access.Registry

	Animals       ports.CollectionService[domain.Animal]
	Breeding      ports.CollectionService[domain.BreedingRecord]
	Health        ports.CollectionService[domain.HealthRecord]
	Inventory     ports.CollectionService[domain.InventoryItem]
	Customers     ports.CollectionService[domain.Customer]
	Suppliers     ports.CollectionService[domain.Supplier]
	Transactions  ports.CollectionService[domain.Transaction]
	Facilities    ports.CollectionService[domain.Facility]
	Veterinarians ports.CollectionService[domain.Veterinarian]
	Content       ports.CollectionService[domain.ContentPanel]

	// Checks are the readiness checks, by dependency name.
	Checks map[string]handlers.Check
}

var (
	animalJoin   = []ports.Join{{From: domain.CollectionAnimals, LocalField: "animal_id", As: "animal"}}
	parentsJoins = []ports.Join{
		{From: domain.CollectionAnimals, LocalField: "mother_id", As: "mother"},
		{From: domain.CollectionAnimals, LocalField: "father_id", As: "father"},
	}
)

// BuildServices wires the MongoDB row stores and the Redis session holder.
func BuildServices(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) Services {
	animals := mongostore.NewCollection[domain.Animal](db, domain.CollectionAnimals)
	breeding := mongostore.NewCollection[domain.BreedingRecord](db, domain.CollectionBreedingRecords, "mother", "father")
	health := mongostore.NewCollection[domain.HealthRecord](db, domain.CollectionHealthRecords, "animal")
	inventory := mongostore.NewCollection[domain.InventoryItem](db, domain.CollectionInventory)
	transactions := mongostore.NewCollection[domain.Transaction](db, domain.CollectionTransactions)

	svcLog := log.With().Str("component", "collections").Logger()

	return Services{
		Auth: service.NewAuthService(
			mongostore.NewUserRepository(db),
			redisstore.NewSessionStore(rdb),
			cfg.JWTSecret,
			cfg.TokenTTL,
			log.With().Str("component", "auth").Logger(),
		),
		Dashboard: service.NewDashboardService(service.DashboardStores{
			Animals:      animals,
			Inventory:    inventory,
			Health:       health,
			Breeding:     breeding,
			Transactions: transactions,
		}, cfg.ReminderHorizonDays, log.With().Str("component", "dashboard").Logger()),
		Registry: access.DefaultRegistry(),

		Animals: service.NewCollectionService[domain.Animal](domain.CollectionAnimals, animals,
			ports.Query{SortBy: "name"}, svcLog),
		Breeding: service.NewCollectionService[domain.BreedingRecord](domain.CollectionBreedingRecords, breeding,
			ports.Query{Joins: parentsJoins, SortBy: "breeding_date", Desc: true}, svcLog),
		Health: service.NewCollectionService[domain.HealthRecord](domain.CollectionHealthRecords, health,
			ports.Query{Joins: animalJoin, SortBy: "date", Desc: true}, svcLog),
		Inventory: service.NewCollectionService[domain.InventoryItem](domain.CollectionInventory, inventory,
			ports.Query{SortBy: "name"}, svcLog),
		Customers: service.NewCollectionService[domain.Customer](domain.CollectionCustomers,
			mongostore.NewCollection[domain.Customer](db, domain.CollectionCustomers),
			ports.Query{SortBy: "full_name"}, svcLog),
		Suppliers: service.NewCollectionService[domain.Supplier](domain.CollectionSuppliers,
			mongostore.NewCollection[domain.Supplier](db, domain.CollectionSuppliers),
			ports.Query{SortBy: "name"}, svcLog),
		Transactions: service.NewCollectionService[domain.Transaction](domain.CollectionTransactions, transactions,
			ports.Query{SortBy: "date", Desc: true}, svcLog),
		Facilities: service.NewCollectionService[domain.Facility](domain.CollectionFacilities,
			mongostore.NewCollection[domain.Facility](db, domain.CollectionFacilities),
			ports.Query{SortBy: "name"}, svcLog),
		Veterinarians: service.NewCollectionService[domain.Veterinarian](domain.CollectionVeterinarians,
			mongostore.NewCollection[domain.Veterinarian](db, domain.CollectionVeterinarians),
			ports.Query{SortBy: "full_name"}, svcLog),
		Content: service.NewCollectionService[domain.ContentPanel](domain.CollectionContent,
			mongostore.NewCollection[domain.ContentPanel](db, domain.CollectionContent),
			ports.Query{SortBy: "sort_order"}, svcLog),

		Checks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	}
}

// Route gates. Every requirement lists each admitted role; none is implied.
// staffWrite guards animal writes. Customers may browse animals but only
// staff change them.
var staffWrite = access.Require(access.ModeBlock, domain.RoleAdministrator, domain.RoleFarm)

// routeGate derives a route's gate from the section registry so the API and
// the section list never disagree on who may enter. Hidden sections stay
// hidden (404); every other denial is a plain block (401/403). A section the
// registry does not know is closed to everyone.
func routeGate(reg *access.Registry, section string) access.Requirement {
	entry, ok := reg.Lookup(section)
	if !ok {
		return access.Require(access.ModeHide)
	}
	req := entry.Requirement
	if req.Mode != access.ModeHide {
		req.Mode = access.ModeBlock
	}
	return req
}

var (
	staff     = access.Require(access.ModeBlock, domain.RoleAdministrator, domain.RoleFarm)
	adminOnly = access.Require(access.ModeBlock, domain.RoleAdministrator)
	adminHide = access.Require(access.ModeHide, domain.RoleAdministrator)
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// per-router registry so repeated construction (tests) never double-registers
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "farm",
		Registerer: httpMetrics,
	}))

	// --- Health checks and tooling (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if svcs.Checks != nil {
		e.GET("/health/ready", handlers.NewHealthDependenciesHandler(svcs.Checks).Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{httpMetrics, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	identify := middleware.Identify(svcs.Auth)
	gate := func(section string) access.Requirement { return routeGate(svcs.Registry, section) }

	// --- Auth routes ---
	// a stale token must never stop a caller from signing in again
	authHandler := handler.NewAuthHandler(svcs.Auth)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, identify)
	auth.GET("/session", authHandler.Session, middleware.IdentifyOptional(svcs.Auth))

	// --- Public site ---
	e.GET("/public/content", handler.NewContentHandler(svcs.Content).Published)

	v1 := e.Group("/v1", identify)
	v1.GET("/sections", handler.NewSectionsHandler(svcs.Registry).List)
	v1.POST("/users", authHandler.CreateUser, middleware.Gate("users", gate("users")))

	// --- Dashboard ---
	dash := handler.NewDashboardHandler(svcs.Dashboard)
	dg := v1.Group("/dashboard", middleware.Gate("dashboard", gate("dashboard")))
	dg.GET("", dash.Overview)
	dg.GET("/animals", dash.Animals)
	dg.GET("/inventory", dash.Inventory)
	dg.GET("/health-reminders", dash.HealthReminders)
	dg.GET("/breeding", dash.Breeding)
	dg.GET("/finance", dash.Finance, middleware.Gate("finance", handler.FinanceRequirement))

	// --- Collections ---
	mount(v1, "/animals", "animals", svcs.Animals, handler.ListOptions{
		Filters: []string{"status", "species", "gender", "facility_id"},
		Sorts:   []string{"name", "birth_date", "price", "created_at"},
	}, gate("animals"), staffWrite)
	mount(v1, "/breeding-records", "breeding", svcs.Breeding, handler.ListOptions{
		Filters: []string{"status", "species", "mother_id", "father_id"},
		Sorts:   []string{"breeding_date", "expected_date", "created_at"},
	}, gate("breeding"), gate("breeding"))
	mount(v1, "/health-records", "health", svcs.Health, handler.ListOptions{
		Filters: []string{"animal_id", "record_type", "veterinarian_id"},
		Sorts:   []string{"date", "next_due_date", "created_at"},
	}, gate("health"), gate("health"))
	mount(v1, "/inventory", "inventory", svcs.Inventory, handler.ListOptions{
		Filters: []string{"category", "supplier_id"},
		Sorts:   []string{"name", "quantity", "created_at"},
	}, gate("inventory"), gate("inventory"))
	mount(v1, "/facilities", "facilities", svcs.Facilities, handler.ListOptions{
		Filters: []string{"type", "status"},
		Sorts:   []string{"name", "capacity"},
	}, gate("facilities"), gate("facilities"))
	mount(v1, "/veterinarians", "veterinarians", svcs.Veterinarians, handler.ListOptions{
		Sorts: []string{"full_name", "clinic"},
	}, gate("veterinarians"), gate("veterinarians"))
	mount(v1, "/suppliers", "suppliers", svcs.Suppliers, handler.ListOptions{
		Filters: []string{"category"},
		Sorts:   []string{"name"},
	}, gate("suppliers"), gate("suppliers"))
	mount(v1, "/customers", "customers", svcs.Customers, handler.ListOptions{
		Filters: []string{"email"},
		Sorts:   []string{"full_name", "created_at"},
	}, gate("customers"), gate("customers"))
	mount(v1, "/transactions", "transactions", svcs.Transactions, handler.ListOptions{
		Filters: []string{"type", "status", "customer_id", "supplier_id", "animal_id"},
		Sorts:   []string{"date", "amount", "created_at"},
	}, gate("transactions"), gate("transactions"))
	mount(v1, "/content", "content", svcs.Content, handler.ListOptions{
		Filters:     []string{"slug"},
		BoolFilters: []string{"published"},
		Sorts:       []string{"sort_order", "slug"},
	}, gate("content"), gate("content"))

	return e
}

// mount registers list and write routes for one collection behind separate
// read and write gates.
func mount[T any](g *echo.Group, path, section string, svc ports.CollectionService[T], opts handler.ListOptions, read, write access.Requirement) {
	h := handler.NewCollectionHandler(svc, opts)
	cg := g.Group(path)
	cg.GET("", h.List, middleware.Gate(section, read))
	cg.POST("", h.Create, middleware.Gate(section, write))
	cg.PUT("/:id", h.Update, middleware.Gate(section, write))
	cg.DELETE("/:id", h.Delete, middleware.Gate(section, write))
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
