package v1

import (
	"net/http"

	"github.com/clinicore/clinicore/config"
	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/pkg/auth"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config     *config.Config
	JWTManager *auth.JWTManager
	Collector  *metrics.Collector
	Log        *zap.Logger

	Auth          *AuthHandler
	Doctors       *DoctorHandler
	Patients      *PatientHandler
	Records       *MedicalRecordHandler
	Notifications *WSHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Log))
	r.Use(Metrics(deps.Collector))
	r.Use(RateLimit(deps.Config.RateLimit))
	r.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.CORS.AllowedOrigins,
		AllowMethods: deps.Config.CORS.AllowedMethods,
		AllowHeaders: deps.Config.CORS.AllowedHeaders,
		MaxAge:       deps.Config.CORS.MaxAge,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
	}

	// The connection token travels in the handshake headers, outside the
	// bearer-token gate.
	r.GET("/ws", deps.Notifications.Serve)

	api := r.Group("/", Authenticate(deps.JWTManager))
	{
		api.GET("/doctors", deps.Doctors.List)
		api.GET("/doctors/:id", deps.Doctors.Get)
		api.GET("/doctors/:id/assigned-patients", deps.Doctors.ListAssignedPatients)

		api.GET("/patients", deps.Patients.List)
		api.POST("/patients", deps.Patients.Create)
		api.GET("/patients/:id", deps.Patients.Get)
		api.PUT("/patients/:id", deps.Patients.Update)
		api.DELETE("/patients/:id", deps.Patients.Delete)

		api.POST("/patients/:id/assign-doctor/:doctor_id", deps.Patients.AssignDoctor)
		api.GET("/patients/:id/assigned-doctors", deps.Patients.ListAssignedDoctors)
		api.DELETE("/patients/:id/unassign-doctor/:doctor_id", deps.Patients.UnassignDoctor)

		api.GET("/patients/:id/medical-information", RequireRole(domain.RoleDoctor), deps.Records.List)
		api.POST("/patients/:id/medical-information", deps.Records.Create)
		api.GET("/patients/:id/medical-information/:record_id", deps.Records.Get)
		api.PUT("/patients/:id/medical-information/:record_id", deps.Records.Update)
		api.DELETE("/patients/:id/medical-information/:record_id", deps.Records.Delete)
	}

	return r
}
