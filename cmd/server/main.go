package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/comment"
	"github.com/VitaminP8/blog/internal/config"
	"github.com/VitaminP8/blog/internal/logging"
	"github.com/VitaminP8/blog/internal/password"
	"github.com/VitaminP8/blog/internal/post"
	"github.com/VitaminP8/blog/internal/storage/memory"
	"github.com/VitaminP8/blog/internal/storage/postgres"
	"github.com/VitaminP8/blog/internal/user"
	"github.com/VitaminP8/blog/internal/web"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres (драйвер задает DB_DRIVER)")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logging.New(!cfg.System.IsProd)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer l.Sync()

	var (
		db           *gorm.DB
		userStore    user.UserStorage
		postStore    post.PostStorage
		commentStore comment.CommentStorage
	)

	switch *storageType {
	case "postgres":
		db, err = postgres.Open(cfg.Database.Driver, cfg.DSN())
		if err != nil {
			l.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		}
		if err := postgres.Migrate(db); err != nil {
			l.Fatal("failed to migrate database", zap.Error(err))
		}

		l.Info("using SQL storage", zap.String("driver", cfg.Database.Driver))
		userStore = postgres.NewUserPostgresStorage(db)
		postStore = postgres.NewPostPostgresStorage(db)
		commentStore = postgres.NewCommentPostgresStorage(db)

	case "memory":
		l.Info("using in-memory storage")
		users := memory.NewUserMemoryStorage()
		posts := memory.NewPostMemoryStorage(users)
		userStore = users
		postStore = posts
		commentStore = memory.NewCommentMemoryStorage(posts, users)

	default:
		l.Fatal("unknown storage type", zap.String("storage", *storageType))
	}

	hasher, err := password.New(cfg.Security.PasswordHasher)
	if err != nil {
		l.Fatal("failed to init password hasher", zap.Error(err))
	}

	sessions, err := auth.NewSessions(cfg.Security.SecretKey, cfg.Security.SessionTTL, cfg.Security.CookieSecure)
	if err != nil {
		l.Fatal("failed to init sessions", zap.Error(err))
	}

	app := web.NewApp(l, userStore, postStore, commentStore, user.NewAccounts(userStore, hasher), sessions)
	e, err := app.Echo(web.Options{
		CSRF:         cfg.Security.CSRF,
		CookieSecure: cfg.Security.CookieSecure,
	})
	if err != nil {
		l.Fatal("failed to build http server", zap.Error(err))
	}

	// запуск HTTP сервера, Start блокирует до Shutdown
	go func() {
		l.Info("server started", zap.String("listen", cfg.System.Listen))
		err := e.Start(cfg.System.Listen)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server error", zap.Error(err))
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		l.Error("failed to shutdown server", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			l.Error("failed to close database", zap.Error(err))
		}
	}

	l.Info("server stopped")
}
