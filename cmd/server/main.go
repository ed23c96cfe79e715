package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/averden/hospitality-booking/internal/config"
	"github.com/averden/hospitality-booking/internal/database"
	"github.com/averden/hospitality-booking/internal/handler"
	"github.com/averden/hospitality-booking/internal/mailer"
	"github.com/averden/hospitality-booking/internal/middleware"
	"github.com/averden/hospitality-booking/internal/queue"
	"github.com/averden/hospitality-booking/internal/repository"
	"github.com/averden/hospitality-booking/internal/router"
	"github.com/averden/hospitality-booking/internal/storage"
)

func main() {
	// .env is a dev convenience; in production the variables come from
	// the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	storageCfg := config.LoadStorageConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	groups := repository.NewGroupRepo(db)
	locations := repository.NewLocationRepo(db)
	facilities := repository.NewFacilityRepo(db)
	listings := repository.NewListingRepo(db)
	resources := repository.NewResourceRepo(db)
	rules := repository.NewRuleRepo(db)
	bookings := repository.NewBookingRepo(db)
	media := repository.NewMediaRepo(db)
	reports := repository.NewReportRepo(db)

	mail := mailer.New(config.LoadMailerConfig())
	store := storage.New(storageCfg)

	// The consumer owns email for confirmed bookings; it reconnects on
	// broker failures by itself.
	go func() {
		if err := queue.StartBookingConsumer(mail); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Periodic maintenance: lapse stale holds often, prune dead refresh
	// tokens once a night.
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if n, err := bookings.ExpireStale(ctx, time.Now().UTC()); err != nil {
			log.Printf("expire sweep: %v", err)
		} else if n > 0 {
			log.Printf("expire sweep: %d holds lapsed", n)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	if _, err := c.AddFunc("30 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if n, err := tokens.DeleteExpired(ctx); err != nil {
			log.Printf("token prune: %v", err)
		} else if n > 0 {
			log.Printf("token prune: %d rows removed", n)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()
	defer c.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		publicMW = append(publicMW,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Browse:       handler.NewBrowseHandler(locations, facilities, listings),
		Availability: handler.NewAvailabilityHandler(listings, resources, bookings),
		Search:       handler.NewSearchHandler(listings),
		Booking:      handler.NewBookingHandler(cfg, bookings, listings, resources, rules, users, mail),
		AdminListing: handler.NewAdminListingHandler(listings, resources, rules, locations, facilities, users),
		AdminLoc:     handler.NewAdminLocationHandler(locations, facilities),
		AdminUser:    handler.NewAdminUserHandler(users, groups, tokens),
		AdminBooking: handler.NewAdminBookingHandler(bookings, listings, users),
		AdminReport:  handler.NewAdminReportHandler(reports, locations, users),
		AdminMedia:   handler.NewAdminMediaHandler(storageCfg, store, media, listings, users),
	}
	router.Register(e, h, cfg.JWTSecret, publicMW...)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
