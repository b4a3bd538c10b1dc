package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpapi "github.com/liminal-studio/liminal-backend/internal/api/http"
	"github.com/liminal-studio/liminal-backend/internal/api/http/middleware"
	"github.com/liminal-studio/liminal-backend/internal/auth"
	authhttp "github.com/liminal-studio/liminal-backend/internal/auth/http"
	authmw "github.com/liminal-studio/liminal-backend/internal/auth/middleware"
	"github.com/liminal-studio/liminal-backend/internal/auth/token"
	mediahttp "github.com/liminal-studio/liminal-backend/internal/media/http"
	projecthttp "github.com/liminal-studio/liminal-backend/internal/projects/http"
	userhttp "github.com/liminal-studio/liminal-backend/internal/users/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	TrustedProxies []string
	TokenHeader    string
	MaxUploadBytes int64

	// Checks are probed by /health.
	Checks []httpapi.Check

	Tokens   *token.Issuer
	Prover   auth.IdentityProver
	Users    UserService
	Projects projecthttp.Service
	Uploads  mediahttp.Uploader
	Limiter  *middleware.IPRateLimiter
}

// UserService is what both the user routes and the admin guard need.
type UserService interface {
	userhttp.Service
	authmw.RoleChecker
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("proxies", dep.TrustedProxies).Msg("trusted proxies rejected, using peer address")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORS(dep.AllowedOrigins, dep.TokenHeader))

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Checks...).RegisterRoutes(r)

	api := r.Group("")

	verify := authmw.VerifyToken(dep.Tokens, dep.TokenHeader)
	admin := authmw.Admin(dep.Tokens, dep.TokenHeader, dep.Users)

	var limit gin.HandlerFunc
	if dep.Limiter != nil {
		limit = dep.Limiter.Middleware()
	}

	authHandler := authhttp.New(dep.Tokens, dep.Users)
	if dep.Prover != nil {
		authHandler.WithProver(dep.Prover)
	}
	authHandler.Register(api, authhttp.Guards{Verify: verify, Limit: limit})

	userhttp.New(dep.Users).Register(api, admin...)
	projecthttp.New(dep.Projects).Register(api, admin...)

	uploadGuards := admin
	if limit != nil {
		uploadGuards = append([]gin.HandlerFunc{limit}, admin...)
	}
	mediahttp.New(dep.Uploads, dep.MaxUploadBytes).Register(api, uploadGuards...)

	return r
}
