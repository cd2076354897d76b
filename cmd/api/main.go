package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaei312654/Devinillibackend2/internal/admin"
	"github.com/rafaei312654/Devinillibackend2/internal/auth"
	"github.com/rafaei312654/Devinillibackend2/internal/config"
	"github.com/rafaei312654/Devinillibackend2/internal/cors"
	"github.com/rafaei312654/Devinillibackend2/internal/db"
	"github.com/rafaei312654/Devinillibackend2/internal/events"
	"github.com/rafaei312654/Devinillibackend2/internal/handlers"
	"github.com/rafaei312654/Devinillibackend2/internal/repository"
)

func main() {
	cfg := config.Load()

	// Logger JSON global - permite usar slog.Info/Error em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			database := client.Database(cfg.MongoDB)
			empRepo := repository.NewEmployeeRepository(database)
			secRepo := repository.NewSectorRepository(database)
			ctx := context.Background()
			if err := admin.SeedEmployees(ctx, empRepo, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			if err := admin.SeedSectorData(ctx, secRepo, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.MongoDB)
	empRepo := repository.NewEmployeeRepository(database)
	secRepo := repository.NewSectorRepository(database)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := secRepo.EnsureIndexes(ctx); err != nil {
			slog.Warn("ensure_indexes_error", "err", err)
		}
		cancel()
	}

	// publisher é opcional: API sobe mesmo com o broker fora do ar
	var pub handlers.Publisher
	if p, err := events.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue); err != nil {
		slog.Warn("rabbitmq_unavailable", "err", err)
	} else {
		pub = p
		defer func() { _ = p.Close() }()
	}

	gate := auth.NewGate(cfg.AdminPassword)
	h := handlers.New(empRepo, secRepo, gate, pub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)

	// Funcionários
	mux.HandleFunc("GET /api/employees", h.ListEmployees)
	mux.HandleFunc("POST /api/employees", h.CreateEmployee)
	mux.HandleFunc("GET /api/employees/{id}", h.GetEmployee)
	mux.HandleFunc("PUT /api/employees/{id}/salary", h.UpdateSalary)
	mux.HandleFunc("PUT /api/employees/{id}/pix", h.UpdatePix)
	mux.HandleFunc("DELETE /api/employees/{id}", h.FireEmployee)
	mux.HandleFunc("PUT /api/employees/{id}/calculations", h.UpdateCalculations)
	mux.HandleFunc("GET /api/employees/{id}/payroll/{period}", h.CalculatePayroll)
	mux.HandleFunc("POST /api/validate-password", h.ValidatePassword)

	// Setores
	mux.HandleFunc("GET /api/sectors/{name}/data", h.ListSectorData)
	mux.HandleFunc("POST /api/sectors/{name}/update", h.AppendSectorData)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors.AllowAll(logMiddleware(mux)),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRW{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		slog.Info("http_request",
			"method", r.Method, "path", r.URL.Path,
			"status", srw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRW struct {
	http.ResponseWriter
	status int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRW) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}
