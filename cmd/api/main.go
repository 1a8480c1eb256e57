package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/config"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/leave-ledger-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/leave-ledger-go/internal/service/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/leave-ledger-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/leave-ledger-go/internal/service/notification"
	"github.com/cmlabs-hris/leave-ledger-go/migrations"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

// stores bundles the transaction handle with the repositories built on it.
type stores struct {
	tx            database.Transactor
	employees     employee.EmployeeRepository
	ledger        employee.LedgerRepository
	requests      leave.LeaveRequestRepository
	documents     leave.LeaveDocumentRepository
	notifications notification.Repository
	close         func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initializing local storage: %w", err)
	}

	policy := cfg.Ledger.Policy.LeavePolicy()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage, cfg.Storage.MaxUploadSize)
	notifService := notificationService.NewNotificationService(st.notifications, notificationService.Config{
		FeedLimit: policy.NotificationFeedLimit,
	})
	leaveSvc := leaveService.NewLeaveService(
		st.tx,
		st.requests,
		st.documents,
		st.employees,
		st.ledger,
		notifService,
		fileService,
		policy,
	)
	employeeSvc := employeeService.NewEmployeeService(st.tx, st.employees, st.ledger, policy.DefaultBalances)

	scheduler := cron.NewScheduler()
	cron.NewNotificationJobs(notifService, cfg.Jobs.NotificationRetention).Register(scheduler, cfg.Jobs.PruneInterval)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			UploadsDir:     fileStorage.BasePath(),
		},
		JWTService,
		appHTTP.NewLeaveHandler(leaveSvc, cfg.Storage.MaxUploadSize),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewNotificationHandler(notifService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	scheduler.Start(gctx)
	g.Go(func() error {
		slog.Info("server listening", slog.String("addr", server.Addr), slog.String("data_store", cfg.App.DataStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		slog.Info("shutting down server")
		scheduler.Stop()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-ledger"),
		slog.String("env", cfg.App.Env),
	)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.App.DataStore {
	case config.DataStoreMemory:
		store := memory.NewStore()
		return &stores{
			tx:            store,
			employees:     store.Employees(),
			ledger:        store.Ledger(),
			requests:      store.LeaveRequests(),
			documents:     store.LeaveDocuments(),
			notifications: store.Notifications(),
			close:         func() {},
		}, nil
	case config.DataStorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			StatementTimeout: cfg.Database.StatementTimeout,
			LockTimeout:      cfg.Database.LockTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.RunMigrations(db, migrations.FS); err != nil {
				db.Close()
				return nil, fmt.Errorf("running migrations: %w", err)
			}
		}
		return &stores{
			tx:            postgresql.NewTransactionManager(db.Pool),
			employees:     postgresql.NewEmployeeRepository(db),
			ledger:        postgresql.NewLedgerRepository(db),
			requests:      postgresql.NewLeaveRequestRepository(db),
			documents:     postgresql.NewLeaveDocumentRepository(db),
			notifications: postgresql.NewNotificationRepository(db),
			close:         db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DATA_STORE %q", cfg.App.DataStore)
	}
}
