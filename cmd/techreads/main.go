package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"techreads/internal/backend"
	"techreads/internal/cart"
	"techreads/internal/config"
	"techreads/internal/credstore"
	"techreads/internal/http/handlers"
	applog "techreads/internal/log"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	tokens, err := credstore.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer tokens.Close()

	api := backend.New(cfg.APIBaseURL)
	carts := cart.NewStore()

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Never leak internals to the page
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(api, carts, tokens)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.SessionContext(deps))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- Public pages ----------
	app.Get("/", func(c *fiber.Ctx) error {
		loggedIn, _ := c.Locals("loggedIn").(bool)
		return c.Render("index", fiber.Map{"LoggedIn": loggedIn})
	})

	authH := deps.AuthHandler
	app.Get("/auth/login", authH.LoginForm)
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Get("/auth/register", authH.RegisterForm)
	app.Post("/auth/register", authH.Register)
	app.Post("/auth/logout", authH.Logout)

	// ---------- Storefront (token required) ----------
	gate := handlers.RequireAuth(deps.Auth)

	app.Get("/books", gate, deps.BookHandler.List)
	app.Get("/books/add", gate, deps.BookHandler.AddForm)
	app.Post("/books/add", gate, deps.BookHandler.Create)
	app.Get("/books/edit/:id", gate, deps.BookHandler.EditForm)
	app.Post("/books/edit/:id", gate, deps.BookHandler.Update)
	app.Post("/books/:id/delete", gate, deps.BookHandler.Delete)
	app.Get("/books/:id", gate, deps.BookHandler.Detail)

	app.Get("/cart", gate, deps.CartHandler.View)
	app.Post("/cart", gate, deps.CartHandler.Add)
	app.Post("/cart/update", gate, deps.CartHandler.Update)
	app.Post("/cart/remove", gate, deps.CartHandler.Remove)
	app.Post("/checkout", gate, deps.TransactionHandler.Place)

	app.Get("/transactions", gate, deps.TransactionHandler.List)
	app.Get("/transactions/:id", gate, deps.TransactionHandler.Detail)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
