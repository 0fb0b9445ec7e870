// @title           Financial Document QA API
// @version         1.0
// @description     This API answers questions about uploaded financial documents using lexical retrieval and a locally hosted model.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/data/store"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
	"github.com/nmehta6/finqa/internal/handlers"
	"github.com/nmehta6/finqa/internal/job"
	"github.com/nmehta6/finqa/internal/mcpserver"
	"github.com/nmehta6/finqa/internal/qa"
	"github.com/nmehta6/finqa/internal/qa/library"
	"github.com/nmehta6/finqa/internal/qa/model"
	"github.com/nmehta6/finqa/internal/server"
	"github.com/nmehta6/finqa/internal/worker"
	"github.com/nmehta6/finqa/pkg/logx"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	logx.Init()
	var logger = logx.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	backend, err := model.For(config.ModelBackend(), config.ModelName(), config.ModelEndpoint())
	if err != nil {
		logger.Error("Invalid model backend configuration", "error", err)
		return
	}
	logger.Info("Model backend selected", "backend", backend.Name(), "model", config.ModelName())

	lib := library.New(config.MaxChunkChars())
	qaService := qa.NewService(lib, backend)

	if mcpMode {
		mcpServer, err := mcpserver.NewServer(qaService)
		if err != nil {
			logger.Error("Failed to start MCP server", "error", err)
			return
		}
		if err := mcpServer.Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore(serviceContext, logger),
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	handlers.InitJobHandler(service, qaService)

	//init worker pool
	worker.InitServices(service, qaService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func jobStore(ctx context.Context, logger *logx.Logger) jobModel.JobStore {
	if redisStore := store.GetRedisJobStore(ctx); redisStore != nil {
		return redisStore
	}
	logger.Error("Redis store is offline, falling back to in-memory job store")
	return store.InitInMemoryJobStore()
}
