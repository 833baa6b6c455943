package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/emrgen/article/internal/api"
	"github.com/emrgen/article/internal/cache"
	"github.com/emrgen/article/internal/compress"
	"github.com/emrgen/article/internal/config"
	"github.com/emrgen/article/internal/job"
	"github.com/emrgen/article/internal/jobs"
	"github.com/emrgen/article/internal/service"
	"github.com/emrgen/article/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server together with the background jobs
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	db := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	// the version cache is optional; without redis every read hits the store
	var versionCache *cache.VersionCache
	if cnf.RedisAddr != "" {
		rdb, err := cache.NewRedis(cnf.RedisAddr, cnf.RedisPassword, cnf.RedisDB)
		if err != nil {
			return err
		}
		versionCache = cache.NewVersionCache(rdb)
	}

	articleStore := store.NewGormStore(db)
	if err := articleStore.Migrate(); err != nil {
		return err
	}

	var compressor compress.Compress = compress.NewNop()
	if cnf.Compression == "gzip" {
		compressor = compress.NewGZip()
	}

	articles := service.NewArticleService(compressor, articleStore, versionCache)
	schemas := service.NewSchemaService(compressor, articleStore, versionCache)
	versions := service.NewArticleVersionService(compressor, articleStore, versionCache)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	api.NewArticleRouter(e, articles).Bind()
	api.NewSchemaRouter(e, schemas).Bind()
	api.NewVersionRouter(e, versions).Bind()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(e),
	}

	retention, err := time.ParseDuration(cnf.SweepRetention)
	if err != nil {
		return err
	}
	runner := jobs.NewRunner(
		job.NewVersionSweeper(articleStore, cnf.SweepSchedule, retention),
	)
	runner.Start()

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	runner.Stop()
	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()

	return nil
}
