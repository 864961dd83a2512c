package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountdomain "github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	accounthttp "github.com/AlibekovAA/sunzone-forum/internal/account/http"
	accountrepo "github.com/AlibekovAA/sunzone-forum/internal/account/repository"
	accountservice "github.com/AlibekovAA/sunzone-forum/internal/account/service"
	authhttp "github.com/AlibekovAA/sunzone-forum/internal/auth/http"
	authservice "github.com/AlibekovAA/sunzone-forum/internal/auth/service"
	commenthttp "github.com/AlibekovAA/sunzone-forum/internal/comment/http"
	commentrepo "github.com/AlibekovAA/sunzone-forum/internal/comment/repository"
	commentservice "github.com/AlibekovAA/sunzone-forum/internal/comment/service"
	"github.com/AlibekovAA/sunzone-forum/internal/common/config"
	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/sunzone-forum/internal/common/crypto"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	commonhttp "github.com/AlibekovAA/sunzone-forum/internal/common/http"
	"github.com/AlibekovAA/sunzone-forum/internal/common/httpmetrics"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	posthttp "github.com/AlibekovAA/sunzone-forum/internal/post/http"
	postrepo "github.com/AlibekovAA/sunzone-forum/internal/post/repository"
	postservice "github.com/AlibekovAA/sunzone-forum/internal/post/service"
)

// Repositories is the storage an App runs on. New fills it from the
// configured database; tests may build it directly.
type Repositories struct {
	Posters    accountrepo.Repository
	Responders accountrepo.Repository
	Posts      postrepo.Repository
	Comments   commentrepo.Repository
	Pinger     commonhttp.Pinger
}

// App is the explicit application context: configuration, logger, stores
// and the services built over them.
type App struct {
	Log        *logger.Logger
	Config     config.ForumConfig
	Posters    *accountservice.AccountService
	Responders *accountservice.AccountService
	Auth       *authservice.AuthService
	Posts      *postservice.PostService
	Comments   *commentservice.CommentService

	pinger      commonhttp.Pinger
	closers     []func() error
	rateLimiter *commonhttp.ForumRateLimiter
}

type Stats struct {
	Posters    int
	Responders int
	Posts      int
	Comments   int
}

// New connects to the database named by cfg.DatabaseURL and wires every
// service over it.
func New(ctx context.Context, cfg config.ForumConfig, log *logger.Logger) (*App, error) {
	backend, dsn, err := db.ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case db.BackendPostgres:
		pool, err := db.NewPool(ctx, log, dsn)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.MigrateUp(log, dsn); err != nil {
				pool.Close()
				return nil, err
			}
		}

		app := NewWithRepositories(cfg, log, Repositories{
			Posters:    accountrepo.NewPgRepository(pool, accountdomain.KindPoster),
			Responders: accountrepo.NewPgRepository(pool, accountdomain.KindResponder),
			Posts:      postrepo.NewPgRepository(pool),
			Comments:   commentrepo.NewPgRepository(pool),
			Pinger:     pool,
		})
		stopMetrics := db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)
		app.closers = append(app.closers, func() error {
			pool.Close()
			return nil
		}, func() error {
			stopMetrics()
			return nil
		})
		return app, nil

	case db.BackendSQLite:
		conn, err := db.OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		log.Infof("sqlite store opened: %s", dsn)
		stopMetrics := db.StartSQLiteMetrics(ctx, conn, constants.DBPoolMetricsInterval)

		app := NewWithRepositories(cfg, log, Repositories{
			Posters:    accountrepo.NewSQLiteRepository(conn, accountdomain.KindPoster),
			Responders: accountrepo.NewSQLiteRepository(conn, accountdomain.KindResponder),
			Posts:      postrepo.NewSQLiteRepository(conn),
			Comments:   commentrepo.NewSQLiteRepository(conn),
			Pinger:     sqlPinger{conn},
		})
		// closers run last-in first-out: the sampler stops before the handle closes.
		app.closers = append(app.closers, conn.Close, func() error {
			stopMetrics()
			return nil
		})
		return app, nil

	default:
		return nil, fmt.Errorf("unsupported database backend %q", backend)
	}
}

func NewWithRepositories(cfg config.ForumConfig, log *logger.Logger, repos Repositories) *App {
	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	ids := commoncrypto.NewUUIDGenerator()

	posters := accountservice.NewAccountService(accountdomain.KindPoster, accountservice.AccountServiceDeps{
		Repo:        repos.Posters,
		Hasher:      hasher,
		IDGenerator: ids,
		Log:         log,
	})
	responders := accountservice.NewAccountService(accountdomain.KindResponder, accountservice.AccountServiceDeps{
		Repo:        repos.Responders,
		Hasher:      hasher,
		IDGenerator: ids,
		Log:         log,
	})

	return &App{
		Log:        log,
		Config:     cfg,
		Posters:    posters,
		Responders: responders,
		Auth:       authservice.NewAuthService(authservice.AuthServiceDeps{Hasher: hasher, Log: log}, posters, responders),
		Posts: postservice.NewPostService(postservice.PostServiceDeps{
			Repo:        repos.Posts,
			IDGenerator: ids,
			Log:         log,
		}),
		Comments: commentservice.NewCommentService(commentservice.CommentServiceDeps{
			Repo:        repos.Comments,
			IDGenerator: ids,
			Log:         log,
		}),
		pinger: repos.Pinger,
	}
}

// Handler builds the full HTTP surface. Calling it more than once replaces
// the rate limiter of the previous call.
func (a *App) Handler() http.Handler {
	collector := httpmetrics.New()

	r := mux.NewRouter()
	r.NotFoundHandler = collector.Wrap(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		commonhttp.WriteError(w, http.StatusNotFound, commonerrors.ErrRouteNotFound.Message())
	}))
	r.MethodNotAllowedHandler = collector.Wrap(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonerrors.ErrMethodNotAllowed.Message())
	}))
	r.Use(collector.Wrap, commonhttp.TimeoutMiddleware(a.Config.RequestTimeout))

	r.HandleFunc("/health", commonhttp.HealthHandler(a.Log, a.pinger)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authhttp.NewHandler(a.Auth, a.Log).Register(r)
	posthttp.NewHandler(a.Posts, a.Log).Register(r)
	commenthttp.NewHandler(a.Comments, a.Log).Register(r)

	accounthttp.NewHandler(a.Posters, a.Log).Register(r, accounthttp.Routes{
		Prefixes:   []string{"/admin/posters", "/admin/poster"},
		EmailPaths: []string{"/poster/email"},
	})
	accounthttp.NewHandler(a.Responders, a.Log).Register(r, accounthttp.Routes{
		Prefixes:   []string{"/admin/responders"},
		EmailPaths: []string{"/responders/email"},
	})

	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	a.rateLimiter = commonhttp.NewForumRateLimiter(
		a.Config.AuthRateLimit, a.Config.AuthRateBurst,
		a.Config.GeneralRateLimit, a.Config.GeneralRateBurst,
	)

	return commonhttp.BuildBaseHandler(a.Log, a.rateLimiter.Middleware(r))
}

func (a *App) Stats(ctx context.Context) (Stats, error) {
	var (
		s   Stats
		err error
	)
	if s.Posters, err = a.Posters.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count posters: %w", err)
	}
	if s.Responders, err = a.Responders.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count responders: %w", err)
	}
	if s.Posts, err = a.Posts.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count posts: %w", err)
	}
	if s.Comments, err = a.Comments.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count comments: %w", err)
	}
	return s, nil
}

// Close stops background workers and releases the store.
func (a *App) Close() error {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
		a.rateLimiter = nil
	}
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

type sqlPinger struct {
	conn *sqlx.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.conn.PingContext(ctx)
}
