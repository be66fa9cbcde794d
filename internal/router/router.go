package router

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/config"
	appointmenthandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	authhandler "github.com/clinicore/clinic-api/internal/handler/auth"
	diagnosishandler "github.com/clinicore/clinic-api/internal/handler/diagnosis"
	healthhandler "github.com/clinicore/clinic-api/internal/handler/health"
	orderhandler "github.com/clinicore/clinic-api/internal/handler/order"
	prescriptionhandler "github.com/clinicore/clinic-api/internal/handler/prescription"
	shippinghandler "github.com/clinicore/clinic-api/internal/handler/shipping"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/service/appointment"
	"github.com/clinicore/clinic-api/internal/service/auth"
	"github.com/clinicore/clinic-api/internal/service/diagnosis"
	"github.com/clinicore/clinic-api/internal/service/order"
	"github.com/clinicore/clinic-api/internal/service/prescription"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/internal/service/shipping"
	"github.com/clinicore/clinic-api/pkg/metrics"
	"github.com/clinicore/clinic-api/pkg/token"
)

// Dependencies collects everything the HTTP layer needs. main builds it
// once; nothing here is optional except what the services themselves
// treat as optional.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	DB        *sqlx.DB
	Authority *token.Authority
	Metrics   *metrics.Metrics

	AuthService         *auth.Service
	RBACService         *rbac.Service
	AppointmentService  *appointment.Service
	DiagnosisService    *diagnosis.Service
	PrescriptionService *prescription.Service
	OrderService        *order.Service
	ShippingService     *shipping.Service
}

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// registerValidators wires custom binding tags into gin's validator.
// hhmm accepts wall-clock strings like "09:30" or "09:30:00".
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
}

func New(deps *Dependencies) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(deps.Metrics))

	limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.Burst)
	r.Use(limiter.RateLimit())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	healthhandler.NewHandler(deps.DB).RegisterRoutes(&r.RouterGroup)

	authMW := middleware.NewAuthMiddleware(deps.Authority)
	public := r.Group("/api/v1")
	protected := r.Group("/api/v1")
	protected.Use(authMW.Authenticate())

	authhandler.NewHandler(deps.AuthService, deps.RBACService).RegisterRoutes(public, protected)
	appointmenthandler.NewHandler(deps.AppointmentService, deps.RBACService, deps.Metrics).RegisterRoutes(public, protected)
	diagnosishandler.NewHandler(deps.DiagnosisService, deps.RBACService).RegisterRoutes(protected)
	prescriptionhandler.NewHandler(deps.PrescriptionService, deps.RBACService).RegisterRoutes(protected)
	orderhandler.NewHandler(deps.OrderService, deps.RBACService).RegisterRoutes(protected)
	shippinghandler.NewHandler(deps.ShippingService, deps.RBACService).RegisterRoutes(protected)

	return r
}
