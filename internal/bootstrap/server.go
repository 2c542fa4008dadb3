package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyline-air/booking/api"
	"github.com/skyline-air/booking/config"
	"github.com/skyline-air/booking/internal/service/auth"
	"github.com/skyline-air/booking/internal/service/booking"
	"github.com/skyline-air/booking/internal/service/crew"
	"github.com/skyline-air/booking/internal/service/flights"
)

type Services struct {
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Crew     crew.CrewUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svcs Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(svcs),
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

func NewRouter(svcs Services) *gin.Engine {
	router := gin.Default()

	api.NewAuthHandler(svcs.Auth).Register(router.Group("/auth"))
	api.NewFlightHandler(svcs.Flights).Register(router.Group("/flights"))
	api.NewBookingHandler(svcs.Bookings).Register(router.Group("/bookings"))
	api.NewCrewHandler(svcs.Crew).Register(router.Group("/crew"))

	return router
}
