package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "travelers/internal/adapters/http_server"
	"travelers/internal/adapters/mapbox"
	"travelers/internal/adapters/observability"
	redisad "travelers/internal/adapters/redis"
	"travelers/internal/app"
	"travelers/internal/shared"
	"travelers/internal/storage/static"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// catalog: loaded once, immutable for the process lifetime
	catalog, err := static.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().Int("items", len(catalog.All())).Msg("catalog loaded")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tripStore := redisad.NewTripStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	q := app.NewQueryService(catalog, cache, cfg.CacheTTL)
	trips := app.NewTripService(tripStore, cfg.TripKeyPrefix)
	bookings := app.NewBookingService(catalog, trips, app.DelaySettler{Delay: cfg.SettleDelay})

	// map capability: token shape check, then a best-effort remote probe
	mapState := server.MapState{}
	if ok, reason := mapbox.Capability(cfg.MapboxToken); !ok {
		mapState.Message = reason
		log.Warn().Str("reason", reason).Msg("map rendering degraded")
	} else {
		probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		ok, reason, err := mapbox.New(cfg.MapboxBase, cfg.MapboxToken, 5).VerifyToken(probeCtx)
		cancel()
		switch {
		case err != nil:
			// network trouble is not a reason to hide the map
			mapState.Enabled = true
			log.Warn().Err(err).Msg("map token probe failed, assuming token is valid")
		case !ok:
			mapState.Message = reason
			log.Warn().Str("reason", reason).Msg("map rendering degraded")
		default:
			mapState.Enabled = true
		}
	}

	// http; the request timeout must leave room for booking settlement
	reqTimeout := 15 * time.Second
	if t := cfg.SettleDelay + 5*time.Second; t > reqTimeout {
		reqTimeout = t
	}
	srv := server.New(reqTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Trips: trips, Bookings: bookings, Map: mapState})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
