package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/config"
	"github.com/iteranya/restaurant-pos/internal/database"
	"github.com/iteranya/restaurant-pos/internal/entities/admin"
	"github.com/iteranya/restaurant-pos/internal/entities/bill"
	"github.com/iteranya/restaurant-pos/internal/entities/customer"
	"github.com/iteranya/restaurant-pos/internal/entities/menu"
	"github.com/iteranya/restaurant-pos/internal/entities/order"
	"github.com/iteranya/restaurant-pos/internal/entities/session"
	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

type app struct {
	db       *sqlx.DB
	admins   admin.AdminService
	sessions session.SessionService
	limiter  *web.RateLimiter
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	log      zerolog.Logger

	adminH    *admin.AdminHandler
	menuH     *menu.MenuHandler
	orderH    *order.OrderHandler
	customerH *customer.CustomerHandler
	billH     *bill.BillHandler
}

func newApp(db *sqlx.DB, cfg *config.Config, render web.Renderer, m *metrics.Metrics, logger zerolog.Logger) *app {
	// Repositories
	adminRepo := admin.NewAdminRepository(db)
	sessionRepo := session.NewSessionRepository(db)
	menuRepo := menu.NewMenuRepository(db)
	orderRepo := order.NewOrderRepository(db)
	customerRepo := customer.NewCustomerRepository(db)
	saleRepo := bill.NewSaleRepository(db)

	// Services
	adminSvc := admin.NewAdminService(adminRepo)
	sessionSvc := session.NewSessionService(sessionRepo, utils.NewTokenSigner(cfg.SessionSecret), session.Lifetimes{
		Default:  cfg.SessionTTL,
		Remember: cfg.RememberTTL,
	})
	menuSvc := menu.NewMenuService(menuRepo)
	orderSvc := order.NewOrderService(orderRepo, menuSvc)
	customerSvc := customer.NewCustomerService(customerRepo)
	billSvc := bill.NewBillService(orderRepo, customerRepo, saleRepo, database.NewTxManager(db))

	limiter := web.NewRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst)

	// Handlers
	return &app{
		db:       db,
		admins:   adminSvc,
		sessions: sessionSvc,
		limiter:  limiter,
		metrics:  m,
		logger:   logger,
		log:      logging.ForPackage(logger, "main"),

		adminH:    admin.NewAdminHandler(adminSvc, sessionSvc, limiter, render, m, logging.ForPackage(logger, "admin"), cfg.CookieSecure),
		menuH:     menu.NewMenuHandler(menuSvc, render, logging.ForPackage(logger, "menu")),
		orderH:    order.NewOrderHandler(orderSvc, menuSvc, render, m, logging.ForPackage(logger, "order")),
		customerH: customer.NewCustomerHandler(customerSvc, render, logging.ForPackage(logger, "customer")),
		billH:     bill.NewBillHandler(billSvc, render, logging.ForPackage(logger, "bill")),
	}
}

func (a *app) router() http.Handler {
	r := mux.NewRouter()
	r.Use(
		web.Recover(a.log),
		web.Logging(logging.ForPackage(a.logger, "http")),
		web.Metrics(a.metrics),
	)

	// --- Public Routes ---
	r.HandleFunc("/healthz", a.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	a.adminH.RegisterRoutes(r)

	// --- Protected Routes (Require Auth) ---
	protected := r.NewRoute().Subrouter()
	protected.Use(utils.RequireAuth(a.sessions, admin.LoginPath, a.adminH.SessionStoreFailure))

	a.adminH.RegisterProtectedRoutes(protected)
	a.menuH.RegisterRoutes(protected)
	a.orderH.RegisterRoutes(protected)
	a.customerH.RegisterRoutes(protected)
	a.billH.RegisterRoutes(protected)

	// outside the router so unmatched paths get the headers too
	return web.NoStore(r)
}

func (a *app) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.PingContext(ctx); err != nil {
		a.log.Error().Err(err).Msg("health check failed")
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// purgeSessions runs on the cron schedule.
func (a *app) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := a.sessions.PurgeExpired(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to purge expired sessions")
		return
	}
	a.limiter.Cleanup()
	if n > 0 {
		a.log.Info().Str(logging.EVENT, "session_purge").Int64("removed", n).Msg("expired sessions purged")
	}
}
