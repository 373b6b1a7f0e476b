package attendance

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/Intechlligent1/AttendanceSystem/api/adminapi"
	"github.com/Intechlligent1/AttendanceSystem/internal/cache"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// Service is the attendance application: it wires the scan ingestion
// endpoint, the operator admin API and the storage backends into one HTTP
// server.
type Service struct {
	server     *fiber.App
	serverConf ServerConf
	backends   model.Backends
	resolver   *ScanResolver
	reports    *MonthlyReport
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

func handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return ctx.Status(code).JSON(
		fiber.Map{
			"status":  "error",
			"message": err.Error(),
		},
	)
}

// NewService creates a new attendance Service on top of the passed storage
// backends. statsCache backs the dashboard counters; pass cache.New() for a
// purely in-memory one.
func NewService(
	serverConf ServerConf, backs model.Backends, statsCache cache.Cache, apiOpts *adminapi.Options,
) (*Service, error) {
	if backs.Roster == nil || backs.Ledger == nil {
		return nil, errors.New("attendance: roster and ledger backends are required")
	}
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = tps
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())

	svc := &Service{
		server:     server,
		serverConf: serverConf,
		backends:   backs,
		resolver:   NewScanResolver(backs.Roster, backs.Ledger),
		reports:    NewMonthlyReport(backs.Ledger),
	}
	svc.addScanEndpoint()

	if err := adminapi.Register(
		server.Group("/api/v1/admin"), backs, svc.reports, statsCache, apiOpts,
	); err != nil {
		return nil, err
	}
	return svc, nil
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all the necessary endpoints
func (svc Service) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(svc.server)
}

// Listen starts an http server at the specific address for serving all the
// necessary endpoints
func (svc Service) Listen(addr string) error {
	return svc.server.Listen(addr)
}

// Start serves the application according to its ServerConf and blocks until
// the server fails.
func (svc Service) Start() {
	conf := svc.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(svc.server.Listen(fmt.Sprintf("%s:%d", conf.IPListen, conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(svc.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
