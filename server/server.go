package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"EchoFM/cache"
	"EchoFM/config"
	"EchoFM/core/auth"
	"EchoFM/core/catalog"
	"EchoFM/core/notify"
	"EchoFM/core/player"
	"EchoFM/db"
	"EchoFM/logger"
	"EchoFM/model"
	"EchoFM/repository"
	"EchoFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	auth.SetJWTSecret(cfg.JWTSecret)

	// 设置服务器超时
	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 初始化 MinIO 客户端
	if err := storage.InitMinio(cfg); err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()
	logger.Info("Successfully connected to Redis")

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if err := db.AutoMigrateModels(&model.Like{}); err != nil {
		logger.Fatal("Failed to migrate models", logger.ErrorField(err))
	}

	trackRepo := repository.NewMySQLTrackRepository()
	userRepo := repository.NewMySQLUserRepository(db.DB)
	likeRepo := repository.NewGormLikeRepository(db.GormDB)

	blobs := storage.NewStore(cfg)
	notifier := notify.LogNotifier{}
	gateway := catalog.NewGateway(trackRepo)

	// 播放核心：store → resolver → locator 链
	store := player.NewStore()
	resolver := player.NewResolver(cache.NewCachedTrackFetcher(trackRepo), notifier)
	locator := player.NewLocator(blobs)
	dispatcher := player.NewDispatcher(store, func() {
		// Server-side analog of opening the auth modal.
		logger.Info("auth prompt: unauthenticated play intent")
	})

	// The resolver follows the active ID: whenever a committed store change
	// carries a new active ID, resolution restarts for it.
	var resolveMu sync.Mutex
	lastActive := ""
	store.Subscribe(func(st player.State) {
		resolveMu.Lock()
		defer resolveMu.Unlock()
		if st.ActiveID == lastActive {
			return
		}
		lastActive = st.ActiveID
		resolver.Resolve(context.Background(), st.ActiveID)
	})

	apiHandler := NewAPIHandler(trackRepo, userRepo, likeRepo, gateway, store, dispatcher, resolver, locator, blobs, notifier, cfg)
	playerHub := NewPlayerHub(apiHandler, store, resolver)

	// 使用 gorilla/mux 创建路由器
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// 用户认证相关的API端点
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// 曲目相关的API端点
	router.HandleFunc("/api/tracks", apiHandler.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/search", apiHandler.SearchTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/mine", apiHandler.AuthMiddleware(apiHandler.GetMyTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/liked", apiHandler.AuthMiddleware(apiHandler.GetLikedTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}", apiHandler.GetTrackHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/upload", apiHandler.AuthMiddleware(apiHandler.UploadTrackHandler)).Methods(http.MethodPost)

	// 点赞相关的API端点
	router.HandleFunc("/api/likes/{track_id}", apiHandler.AuthMiddleware(apiHandler.GetLikeHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/likes/{track_id}", apiHandler.AuthMiddleware(apiHandler.LikeTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/likes/{track_id}", apiHandler.AuthMiddleware(apiHandler.UnlikeTrackHandler)).Methods(http.MethodDelete)

	// 播放器相关的API端点
	router.HandleFunc("/api/player", apiHandler.GetPlayerHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/player/play", apiHandler.OptionalAuthMiddleware(apiHandler.PlayHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/next", apiHandler.AuthMiddleware(apiHandler.NextHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/previous", apiHandler.AuthMiddleware(apiHandler.PreviousHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/reset", apiHandler.AuthMiddleware(apiHandler.ResetPlayerHandler)).Methods(http.MethodPost)

	// 播放状态推送
	router.HandleFunc("/ws/player", playerHub.ServeWS)

	srv.Handler = router

	// 配置热加载：.env 变化时调整可动态生效的项
	stopWatch, err := config.Watch(".env", func(next *config.Config) {
		logger.Info("configuration reloaded", logger.String("logLevel", next.LogLevel))
	})
	if err != nil {
		logger.Warn("config watcher unavailable", logger.ErrorField(err))
	} else {
		defer stopWatch()
	}

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	// 等待中断信号
	<-stop
	logger.Info("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	// Let in-flight track resolutions settle before exit.
	resolver.Wait()

	logger.Info("Server stopped")
}
