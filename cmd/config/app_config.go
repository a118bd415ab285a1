package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/internal/api/routes"
	"foodgram-backend/internal/metrics"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/membership"
	"foodgram-backend/pkg/recipe"
	"foodgram-backend/pkg/subscription"
	"foodgram-backend/pkg/tag"
	"foodgram-backend/pkg/user"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Dependencies lets callers swap collaborators that reach outside the
// process. Nil fields are built from config.
type Dependencies struct {
	Storage    storage.AwsS3
	JWTService jwt.JWTService
	// AccessLog overrides LOG_FILE for the access logger.
	AccessLog io.Writer
	// DisableLimiter turns off per-IP rate limiting.
	DisableLimiter bool
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return NewAppWithDependencies(db, Dependencies{})
}

func NewAppWithDependencies(db *gorm.DB, deps Dependencies) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:     "Foodgram API",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		BodyLimit:   16 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		},
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	file := deps.AccessLog
	if file == nil {
		logFile := utils.GetConfig("LOG_FILE")
		if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
			log.Errorf("error creating logs directory: %v", err)
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Errorf("error opening file: %v", err)
			return nil, err
		}
		file = f
	}

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))
	app.Use(metrics.Middleware())

	if !deps.DisableLimiter {
		app.Use(limiter.New(limiter.Config{
			Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 20),
			Expiration: 1 * time.Second,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	// utils
	s3 := deps.Storage
	if s3 == nil {
		s3 = storage.NewAwsS3()
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	membershipRepository := membership.NewMembershipRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := deps.JWTService
	if jwtService == nil {
		jwtService = jwt.NewJWTService()
	}
	userService := user.NewUserService(userRepository, jwtService)
	tagService := tag.NewTagService(tagRepository, validator)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, tagRepository, ingredientRepository, userService, s3)
	membershipService := membership.NewMembershipService(membershipRepository)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		TagHandler:          tagHandler,
		IngredientHandler:   ingredientHandler,
		RecipeHandler:       recipeHandler,
		MembershipHandler:   membershipHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
