package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "cat-health-api/docs"
	jwtauth "cat-health-api/internal/adapters/auth/jwt"
	mem "cat-health-api/internal/adapters/storage/memory"
	pg "cat-health-api/internal/adapters/storage/postgres"
	"cat-health-api/internal/domain/cats"
	"cat-health-api/internal/domain/insurance"
	"cat-health-api/internal/domain/records"
	"cat-health-api/internal/domain/todos"
	"cat-health-api/internal/domain/users"
	"cat-health-api/internal/httpx"
	"cat-health-api/internal/middleware"
)

type Options struct {
	// Tokens may be nil; a dev manager with a throwaway secret is used then.
	Tokens *jwtauth.Manager

	// DB selects Postgres storage when set; nil falls back to in-memory
	// repositories (dev/handoff mode and tests).
	DB *sql.DB

	Logger     *zap.SugaredLogger
	BcryptCost int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = jwtauth.NewManager([]byte("dev-secret-change-me"), 24*time.Hour)
	}

	var (
		usersRepo     users.Repository
		catsRepo      cats.Repository
		recordsRepo   records.Repository
		insuranceRepo insurance.Repository
		todosRepo     todos.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		catsRepo = pg.NewCatsRepo(opts.DB)
		recordsRepo = pg.NewRecordsRepo(opts.DB)
		insuranceRepo = pg.NewInsuranceRepo(opts.DB)
		todosRepo = pg.NewTodosRepo(opts.DB)
	} else {
		usersRepo = mem.NewUsersRepo()
		catsRepo = mem.NewCatsRepo()
		recordsRepo = mem.NewRecordsRepo()
		insuranceRepo = mem.NewInsuranceRepo()
		todosRepo = mem.NewTodosRepo()
	}

	usersSvc := users.NewService(usersRepo, tokens, opts.BcryptCost)
	catsSvc := cats.NewService(catsRepo)
	recordsSvc := records.NewService(recordsRepo)
	insuranceSvc := insurance.NewService(insuranceRepo)
	todosSvc := todos.NewService(todosRepo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Error(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api", func(api chi.Router) {
		// Public: register/login.
		users.RegisterRoutes(api, usersSvc)

		// Everything else requires a verified bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth(tokens))

			cats.RegisterRoutes(protected, catsSvc, recordsSvc)
			records.RegisterRoutes(protected, recordsSvc, catsSvc)
			insurance.RegisterRoutes(protected, insuranceSvc, catsSvc)
			todos.RegisterRoutes(protected, todosSvc)
		})
	})

	return r
}
