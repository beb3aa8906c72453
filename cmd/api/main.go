package main

import (
	"context"
	"log"
	"os"
	"time"

	"khp/internal/auth"
	"khp/internal/company"
	"khp/internal/db"
	"khp/internal/events"
	"khp/internal/ingredient"
	"khp/internal/location"
	"khp/internal/loss"
	"khp/internal/menu"
	"khp/internal/middleware"
	"khp/internal/order"
	"khp/internal/perishable"
	"khp/internal/preparation"
	"khp/internal/room"
	"khp/internal/settings"
	"khp/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── EVENTS ─────────────────────────
	var publisher events.Publisher = events.NopPublisher{}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		broker, err := events.Dial(url)
		if err != nil {
			log.Fatal("❌ RabbitMQ init failed:", err)
		}
		defer broker.Close()
		if err := broker.DeclareAll(); err != nil {
			log.Fatal("❌ RabbitMQ declare failed:", err)
		}
		publisher = events.NewPublisher(broker)
		log.Println("✅ Connected to RabbitMQ")
	} else {
		log.Println("⚠️ RABBITMQ_URL not set, events disabled")
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	companyRepo := company.NewPostgresRepository(pgDB)
	locationRepo := location.NewPostgresRepository(pgDB)
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	preparationRepo := preparation.NewPostgresRepository(pgDB)
	lossRepo := loss.NewPostgresRepository(pgDB)
	perishableRepo := perishable.NewRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	settingsRepo := settings.NewPostgresRepository(pgDB)
	roomRepo := room.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	locationService := location.NewService(locationRepo)
	companyService := company.NewService(companyRepo, r2Client, locationService)
	authService := auth.NewService(userRepo, companyService)
	ingredientService := ingredient.NewService(ingredientRepo, r2Client)
	preparationService := preparation.NewService(preparationRepo, publisher)
	lossService := loss.NewService(lossRepo, publisher)
	perishableService := perishable.NewService(perishableRepo, publisher)
	menuService := menu.NewService(menuRepo, r2Client)
	settingsService := settings.NewService(settingsRepo)
	roomService := room.NewService(roomRepo)
	orderService := order.NewService(orderRepo, publisher)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	locationHandler := location.NewHandler(locationService)
	ingredientHandler := ingredient.NewHandler(ingredientService)
	preparationHandler := preparation.NewHandler(preparationService)
	lossHandler := loss.NewHandler(lossService)
	perishableHandler := perishable.NewHandler(perishableService)
	menuHandler := menu.NewHandler(menuService)
	settingsHandler := settings.NewHandler(settingsService)
	roomHandler := room.NewHandler(roomService)
	orderHandler := order.NewHandler(orderService)

	// ───────────────────────── AUTH ROUTES ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/menus/public/:key", menuHandler.ListPublic)
	r.POST("/api/login", authHandler.Login)
	r.POST("/api/register", authHandler.Register)

	// ───────────────────────── API ROUTES ─────────────────────────
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Account
		api.POST("/logout", authHandler.Logout)
		api.GET("/user", authHandler.GetUser)
		api.PUT("/user", authHandler.UpdateUser)
		api.PUT("/user/password", authHandler.UpdatePassword)

		// Company
		api.GET("/company", companyHandler.Get)
		api.PUT("/company", companyHandler.Update)
		api.POST("/company/logo", companyHandler.UploadLogo)

		// Locations
		api.GET("/locations", locationHandler.List)
		api.POST("/location", locationHandler.Create)
		api.PUT("/location/:id", locationHandler.Update)
		api.DELETE("/location/:id", locationHandler.Delete)
		api.GET("/location-types", locationHandler.ListTypes)
		api.POST("/location-types", locationHandler.CreateType)
		api.PUT("/location-types/:id", locationHandler.UpdateType)
		api.DELETE("/location-types/:id", locationHandler.DeleteType)

		// Ingredients & stock
		api.GET("/ingredients", ingredientHandler.List)
		api.GET("/ingredients/:id", ingredientHandler.Get)
		api.POST("/ingredients", ingredientHandler.Create)
		api.PUT("/ingredients/:id", ingredientHandler.Update)
		api.POST("/ingredients/:id", ingredientHandler.UpdateWithImage)
		api.DELETE("/ingredients/:id", ingredientHandler.Delete)
		api.POST("/ingredients/:id/stock", ingredientHandler.SetStock)
		api.GET("/ingredient-categories", ingredientHandler.ListCategories)
		api.POST("/ingredient-categories", ingredientHandler.CreateCategory)
		api.GET("/stock/summary", ingredientHandler.StockSummary)

		// Preparations
		api.GET("/preparations", preparationHandler.List)
		api.GET("/preparations/:id", preparationHandler.Get)
		api.POST("/preparations", preparationHandler.Create)
		api.PUT("/preparations/:id", preparationHandler.Update)
		api.DELETE("/preparations/:id", preparationHandler.Delete)
		api.POST("/preparations/:id/add-quantity", preparationHandler.AddQuantity)
		api.POST("/preparations/:id/remove-quantity", preparationHandler.RemoveQuantity)
		api.POST("/preparations/:id/move-quantity", preparationHandler.MoveQuantity)
		api.GET("/preparations/:id/move-candidates", preparationHandler.MoveCandidates)

		// Losses
		api.GET("/losses", lossHandler.List)
		api.POST("/losses", lossHandler.Register)

		// Perishables
		api.GET("/perishables", perishableHandler.List)
		api.POST("/perishables", perishableHandler.Create)
		api.POST("/perishables/:id/read", perishableHandler.MarkRead)

		// Menus
		api.GET("/menus", menuHandler.List)
		api.GET("/menus/:id", menuHandler.Get)
		api.POST("/menus", menuHandler.Create)
		api.PUT("/menus/:id", menuHandler.Update)
		api.DELETE("/menus/:id", menuHandler.Delete)
		api.POST("/menus/:id/image", menuHandler.UploadImage)

		// Settings (reads for any signed-in user, writes admin-only below)
		api.GET("/menu-categories", settingsHandler.ListCategories)
		api.GET("/menu-types", settingsHandler.ListTypes)
		api.GET("/quick-access", settingsHandler.ListQuickAccesses)

		// Rooms & tables
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:id", roomHandler.Get)
		api.POST("/rooms", roomHandler.Create)
		api.PUT("/rooms/:id", roomHandler.Update)
		api.DELETE("/rooms/:id", roomHandler.Delete)
		api.POST("/tables", roomHandler.CreateTable)
		api.PUT("/tables/:id", roomHandler.UpdateTable)
		api.DELETE("/tables/:id", roomHandler.DeleteTable)

		// Orders
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.POST("/orders", orderHandler.Create)
		api.POST("/orders/:id/step", orderHandler.AppendStep)
		api.POST("/orders/:id/served", orderHandler.MarkServed)
		api.POST("/orders/:id/payed", orderHandler.MarkPayed)
	}

	// ───────────────────────── KITCHEN (CHEF/ADMIN) ─────────────────────────
	kitchen := api.Group("")
	kitchen.Use(middleware.RequireRole(auth.RoleChef, auth.RoleAdmin))
	{
		kitchen.GET("/orders/queue", orderHandler.Queue)
		kitchen.POST("/step-menus/:id/status", orderHandler.AdvanceStepMenu)
	}

	// ───────────────────────── SETTINGS WRITES (ADMIN) ─────────────────────────
	admin := api.Group("")
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/menu-categories", settingsHandler.CreateCategory)
		admin.PUT("/menu-categories/:id", settingsHandler.UpdateCategory)
		admin.DELETE("/menu-categories/:id", settingsHandler.DeleteCategory)
		admin.POST("/menu-types", settingsHandler.CreateType)
		admin.PUT("/menu-types/order", settingsHandler.ReorderTypes)
		admin.PUT("/menu-types/:id", settingsHandler.UpdateType)
		admin.DELETE("/menu-types/:id", settingsHandler.DeleteType)
		admin.POST("/quick-access", settingsHandler.CreateQuickAccess)
		admin.POST("/quick-access/reset", settingsHandler.ResetQuickAccesses)
		admin.PUT("/quick-access/:id", settingsHandler.UpdateQuickAccess)
		admin.DELETE("/quick-access/:id", settingsHandler.DeleteQuickAccess)
	}

	// ───────────────────────── EXPIRY WORKER ─────────────────────────
	go perishableService.RunExpiryWorker(context.Background())

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
