package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/api"
	"github.com/wookrail/trainbooking/config"
	"github.com/wookrail/trainbooking/internal/service/auth"
	"github.com/wookrail/trainbooking/internal/service/booking"
	"github.com/wookrail/trainbooking/internal/service/query"
	"github.com/wookrail/trainbooking/internal/service/routes"
	"github.com/wookrail/trainbooking/internal/ticket"
)

type Services struct {
	Auth     auth.AuthUseCase
	Bookings booking.BookingUseCase
	Queries  query.QueryUseCase
	Routes   routes.RouteUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, services Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, services),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine. Booking and query endpoints sit behind
// the session middleware; registration, login and route lookups are public.
func NewRouter(cfg *config.Config, services Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := api.NewAuthHandler(services.Auth, cfg.Session.CookieName, cfg.Session.TTLMinutes*60)
	routeHandler := api.NewRouteHandler(services.Routes)
	bookingHandler := api.NewBookingHandler(services.Bookings, services.Queries, ticket.NewRenderer())

	public := router.Group("/")
	authHandler.Register(public)
	routeHandler.Register(public)

	private := router.Group("/")
	private.Use(api.SessionAuth(services.Auth, cfg.Session.CookieName))
	bookingHandler.Register(private)

	return router
}
