package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/gradeflow/gradeflow/internal/api/http"
	"github.com/gradeflow/gradeflow/internal/auth"
	"github.com/gradeflow/gradeflow/internal/db"
	"github.com/gradeflow/gradeflow/internal/gradestore"
)

type ServeCmd struct {
	CORSOrigins []string `help:"Allowed CORS origins." default:"http://localhost:3000"`
}

func (cmd *ServeCmd) Run(app *appContext) error {
	cfg := app.cfg

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	store := gradestore.NewSQLStore(dbh, cfg.DBDriver)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cmd.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Get("/reports", api.ListReportsHandler(store))
		pr.Get("/reports/{studentID}", api.GetReportHandler(store))
	})

	app.log.Info("listening", "addr", cfg.HTTPAddr)
	return http.ListenAndServe(cfg.HTTPAddr, r)
}
