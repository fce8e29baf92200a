package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/toolly/toolly/internal/logging"
	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/server/services"
)

const shutdownTimeout = 30 * time.Second

// Server owns the router and the middleware chain in front of the services.
type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	limiter *ipLimiter

	users   *services.UserService
	folders *services.FolderService
	todos   *services.TodoService
	postits *services.PostitService
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, folders *services.FolderService,
	todos *services.TodoService, postits *services.PostitService) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: newIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		users:   users,
		folders: folders,
		todos:   todos,
		postits: postits,
	}
}

// Router assembles all routes. Public auth endpoints sit outside the bearer
// middleware; everything touching user resources sits inside it.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(requestLogger(s.logger)))
	r.Use(s.recoverPanic)
	r.Use(s.rateLimit)
	if s.cfg.CSRFEnabled {
		r.Use(s.csrfProtect)
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/login/validate-2fa", s.handleValidate2FA).Methods(http.MethodPost)
	api.HandleFunc("/password-reset", s.handlePasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/user/exists", s.handleUserExists).Methods(http.MethodGet)
	api.HandleFunc("/csrf", s.handleCSRFToken).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.authenticate)

	protected.HandleFunc("/2fa/setup", s.handle2FASetup).Methods(http.MethodPost)
	protected.HandleFunc("/2fa/enable", s.handle2FAEnable).Methods(http.MethodPost)

	protected.HandleFunc("/newfolders", s.handleFolderCreate).Methods(http.MethodPost)
	protected.HandleFunc("/folders", s.handleFolderList).Methods(http.MethodGet)
	protected.HandleFunc("/folders/{id:[0-9]+}", s.handleFolderRename).Methods(http.MethodPut)
	protected.HandleFunc("/folders/{id:[0-9]+}", s.handleFolderDelete).Methods(http.MethodDelete)

	protected.HandleFunc("/todos", s.handleTodoCreate).Methods(http.MethodPost)
	protected.HandleFunc("/todos", s.handleTodoList).Methods(http.MethodGet)
	protected.HandleFunc("/todos/folder/{folderId:[0-9]+}", s.handleTodoListByFolder).Methods(http.MethodGet)
	protected.HandleFunc("/todos/{id:[0-9]+}/file", s.handleTodoFile).Methods(http.MethodGet)
	protected.HandleFunc("/todos/{id:[0-9]+}/done", s.handleTodoSetDone).Methods(http.MethodPatch)
	protected.HandleFunc("/todos/{id:[0-9]+}", s.handleTodoUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/todos/{id:[0-9]+}", s.handleTodoDelete).Methods(http.MethodDelete)

	protected.HandleFunc("/postits", s.handlePostitCreate).Methods(http.MethodPost)
	protected.HandleFunc("/postits/{folderId:[0-9]+}", s.handlePostitListByFolder).Methods(http.MethodGet)
	protected.HandleFunc("/postits/{id:[0-9]+}", s.handlePostitUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/postits/{id:[0-9]+}", s.handlePostitDelete).Methods(http.MethodDelete)

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddr,
		Handler:           s.Router(),
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
