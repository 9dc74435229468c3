package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

var (
	app = kingpin.New(
		"ipcountry",
		"IP to country resolver backed by rate limited online vendors")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPCOUNTRY_DEBUG").
		Bool()
	configPath = app.Flag("config", "Path to the config file.").
			Short('c').
			Envar("IPCOUNTRY_CONFIG").
			ExistingFile()
	port = app.Flag("port", "Port to listen on. Overrides listen from config.").
		Short('p').
		Envar("PORT").
		Uint16()
	ipstackAPIKey = app.Flag("ipstack-api-key", "API key for ipstack.com.").
			Envar("IPSTACK_API_KEY").
			String()
)

func main() {
	app.Version(version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	conf, err := readConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config")
	}

	listen := overridePort(conf.GetListen(), *port)

	primary, secondary, err := makeProviders(conf, *ipstackAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize providers")
	}

	cache, err := makeCache(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize cache")
	}

	rateLimiter, err := countrylib.NewRateLimiter(
		conf.GetProvider(countrylib.ProviderPrimary).GetRateLimit(),
		conf.GetProvider(countrylib.ProviderSecondary).GetRateLimit())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize rate limiter")
	}

	resolver, err := countrylib.NewResolver(countrylib.ResolverOpts{
		Primary:        primary,
		Secondary:      secondary,
		Cache:          cache,
		RateLimiter:    rateLimiter,
		Logger:         newLogger(level),
		WorkerPoolSize: conf.GetWorkerPoolSize(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize resolver")
	}

	defer resolver.Shutdown()

	ctx, cancel := makeRootContext()
	defer cancel()

	srv := &http.Server{
		Addr:              listen,
		Handler:           countrylib.NewHTTPHandler(resolver),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.Info().Str("listen", listen).Str("version", version).Msg("Server is starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server has failed")
	}

	log.Info().Msg("Server has stopped")
}
