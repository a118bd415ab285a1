package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/metrics"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	TagHandler          handlers.TagHandler
	IngredientHandler   handlers.IngredientHandler
	RecipeHandler       handlers.RecipeHandler
	MembershipHandler   handlers.MembershipHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Tags()
	c.Ingredients()
	c.Recipes()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) optionalAuth() fiber.Handler {
	return c.Middleware.OptionalAuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", metrics.Handler())
}

func (c *Config) Auth() {
	token := c.App.Group("/api/auth/token")
	{
		token.Post("/login", c.UserHandler.Login)
		token.Post("/logout", c.auth(), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/users")
	// static segments before /:id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", c.optionalAuth(), c.UserHandler.GetUsers)
		user.Get("/me", c.auth(), c.UserHandler.Me)
		user.Post("/set_password", c.auth(), c.UserHandler.SetPassword)
		user.Get("/subscriptions", c.auth(), c.SubscriptionHandler.GetSubscriptions)
		user.Get("/:id", c.optionalAuth(), c.UserHandler.GetUser)
		user.Post("/:id/subscribe", c.auth(), c.SubscriptionHandler.Subscribe)
		user.Delete("/:id/subscribe", c.auth(), c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	recipes.Get("/download_shopping_cart", c.auth(), c.MembershipHandler.DownloadShoppingCart)

	// Basic CRUD operations
	recipes.Get("", c.optionalAuth(), c.RecipeHandler.GetRecipes)
	recipes.Post("", c.auth(), c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.optionalAuth(), c.RecipeHandler.GetRecipe)
	recipes.Patch("/:id", c.auth(), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.auth(), c.RecipeHandler.DeleteRecipe)

	// Favorites and shopping cart
	recipes.Post("/:id/favorite", c.auth(), c.MembershipHandler.AddFavorite)
	recipes.Delete("/:id/favorite", c.auth(), c.MembershipHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", c.auth(), c.MembershipHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", c.auth(), c.MembershipHandler.RemoveFromShoppingCart)
}
