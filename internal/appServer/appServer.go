// launching the server, classifier, detection chain and event producer
package appServer

import (
	"context"
	"crypto/tls"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Hitesh-Bhor28/bloomai-backend/config"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/classifier"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/detector"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/advice"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/events"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/preprocess"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/service"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/transport"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	// The classifier failing to load is not process-fatal: the server
	// still answers, /predict reports the failure, /health exposes it.
	var predictor service.Predictor
	clf, err := classifier.New(cfg.Model.Path, cfg.Model.MetadataPath)
	if err != nil {
		logrus.Errorf("failed to load classifier, /predict will be unavailable: %s", err.Error())
	} else {
		predictor = clf
		defer clf.Close()
		logrus.Infof("classifier loaded from %s, classes: %v", cfg.Model.Path, clf.Metadata.Classes)
	}

	catalog := advice.NewCatalog()
	if cfg.Detector.AdvicePath != "" {
		catalog, err = advice.NewCatalogFromFile(cfg.Detector.AdvicePath)
		if err != nil {
			logrus.Fatalf("failed to load advice catalog: %s", err.Error())
		}
	}

	producer := events.NewNoopProducer()
	if cfg.Events.Enabled {
		producer = events.NewProducer(cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer producer.Close()

	preprocessor := preprocess.NewPreprocessor(cfg.Model.ImageSize)

	orchestrator := detector.NewOrchestrator(
		detector.NewHostedStrategy(cfg.Detector.InferenceURL, cfg.Detector.Timeout, catalog),
		detector.NewStaticStrategy(),
		cfg.Detector.GeminiModels,
	)

	classifyService := service.NewClassifyService(predictor, preprocessor, producer)
	diseaseService := service.NewDiseaseService(orchestrator)
	flowerHandler := transport.NewFlowerHandler(classifyService, diseaseService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(flowerHandler, cfg)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}
