package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/rekodihq/rekodi/apps/api/echo/handlers"
	"github.com/rekodihq/rekodi/apps/api/echo/helpers"
	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		RecordSvc      *record.Service
		StudentSvc     *student.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = helpers.AppHTTPErrorHandler
	s.app.Debug = debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")

	handlers.RegisterRecordAPI(v1, s.opts.RecordSvc, s.opts.StudentSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Rekodi API!")
}
