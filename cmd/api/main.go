package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/liminal-studio/liminal-backend/config"
	httpapi "github.com/liminal-studio/liminal-backend/internal/api/http"
	httpmw "github.com/liminal-studio/liminal-backend/internal/api/http/middleware"
	"github.com/liminal-studio/liminal-backend/internal/auth"
	"github.com/liminal-studio/liminal-backend/internal/auth/token"
	"github.com/liminal-studio/liminal-backend/internal/bootstrap"
	"github.com/liminal-studio/liminal-backend/internal/media"
	projectrepo "github.com/liminal-studio/liminal-backend/internal/projects/repository"
	projectsvc "github.com/liminal-studio/liminal-backend/internal/projects/service"
	userrepo "github.com/liminal-studio/liminal-backend/internal/users/repository"
	usersvc "github.com/liminal-studio/liminal-backend/internal/users/service"
)

const serviceName = "liminal-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	bootstrap.SetupLogger(cfg.App.Environment, cfg.App.LogLevel, serviceName)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := bootstrap.OpenMongo(ctx, bootstrap.DBOptions{
		URI:       cfg.Database.MongoURI(),
		AppName:   cfg.Database.AppName,
		ConnectTO: cfg.Database.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("db", cfg.Database.Name).Msg("connected to MongoDB")

	db := client.Database(cfg.Database.Name)

	users := userrepo.NewUserRepository(db, cfg.Database.UsersCollection)
	if err := users.EnsureIndexes(ctx); err != nil {
		// non-fatal: older data may hold duplicate emails
		log.Warn().Err(err).Msg("users index")
	}
	userService := usersvc.NewUserService(users)
	checks := []httpapi.Check{httpapi.MongoCheck(client)}

	if cfg.Redis.URL != "" {
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer rdb.Close()
		checks = append(checks, httpapi.RedisCheck(rdb))
		userService.WithRoleCache(userrepo.NewRoleCache(rdb, cfg.Redis.RoleCacheTTL))
		log.Info().Dur("ttl", cfg.Redis.RoleCacheTTL).Msg("role cache enabled")
	}

	projectService := projectsvc.NewProjectService(
		projectrepo.NewProjectRepository(db, cfg.Database.ProjectsCollection),
	)

	tokens, err := token.NewIssuer(cfg.Auth.AccessTokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer")
	}

	var prover auth.IdentityProver
	if cfg.Firebase.CredentialsPath != "" {
		fb, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("firebase")
		}
		prover = auth.NewFirebaseProver(fb)
		log.Info().Msg("firebase identity proof enabled for token issuance")
	}

	store, err := bootstrap.NewMediaStore(ctx, cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("media store")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		TokenHeader:    cfg.Auth.TokenHeader,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
		Checks:         checks,
		Tokens:         tokens,
		Prover:         prover,
		Users:          userService,
		Projects:       projectService,
		Uploads:        media.NewRelay(store),
		Limiter:        httpmw.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
