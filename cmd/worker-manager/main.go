// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"enrollment-workers/internal/assistant"
	"enrollment-workers/internal/assistant/sessionstore"
	"enrollment-workers/internal/common/aws"
	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/common/database"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/common/observability"
	"enrollment-workers/internal/scoring"

	// Enrollment Workers (4)
	cer "enrollment-workers/internal/workers/enrollment/create-enrollment-record"
	ne "enrollment-workers/internal/workers/enrollment/notify-enrollment"
	sa "enrollment-workers/internal/workers/enrollment/score-applicant"
	vaf "enrollment-workers/internal/workers/enrollment/validate-applicant-fields"

	// Assistant Workers (2)
	pcm "enrollment-workers/internal/workers/assistant/process-chat-message"
	rcs "enrollment-workers/internal/workers/assistant/reset-chat-session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return time.Duration(cfg.Workers[taskType].Timeout) * time.Millisecond
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe (retries internally on the topology probe) ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Migrate(ctx); err != nil {
		zapLog.Fatal("postgres migration failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Elasticsearch ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	leads := database.NewLeadIndex(esClient.Client, cfg.Database.Elasticsearch.LeadIndex)
	zapLog.Info("Elasticsearch connected successfully", zap.String("leadIndex", leads.Name()))

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Firestore (chat analytics, optional) ---
	var chatLogs pcm.ChatLogger
	if cfg.Database.Firestore.Enabled {
		fs, err := database.NewFirestore(ctx, cfg.Database.Firestore)
		if err != nil {
			zapLog.Warn("firestore unavailable, chat logs disabled", zap.Error(err))
		} else {
			defer fs.Close()
			chatLogs = database.NewChatLogStore(fs, cfg.Database.Firestore.ChatLogsCollection)
			zapLog.Info("Firestore connected successfully")
		}
	}

	// --- SES / SNS ---
	var emailSender ne.EmailSender
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		emailSender = sesClient
	}
	var smsSender ne.SMSSender
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		smsSender = snsClient
	}

	// --- Domain services ---
	sysClock := clock.System()
	tables := scoring.TablesFromConfig(cfg.Scoring)
	engine := scoring.NewEngine(sysClock, tables)
	validator := scoring.NewValidator(sysClock, tables)
	chat := assistant.New(assistant.ConfigFrom(cfg.Assistant), sysClock, assistant.DefaultKnowledgeBase())
	sessions := sessionstore.New(rdb.Client, time.Duration(cfg.Database.Redis.SessionTTL)*time.Second)

	// --- Workers ---
	zc := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if jw := camunda.StartWorker(zc, taskType, cfg.Workers[taskType], handler, obs, log); jw != nil {
			workers = append(workers, jw)
		}
	}

	start(vaf.TaskType, vaf.NewHandler(
		&vaf.Config{Timeout: workerTimeout(cfg, vaf.TaskType)},
		validator, log,
	).Handle)

	start(sa.TaskType, sa.NewHandler(
		&sa.Config{Timeout: workerTimeout(cfg, sa.TaskType)},
		engine, log,
	).Handle)

	start(cer.TaskType, cer.NewHandler(
		&cer.Config{Timeout: workerTimeout(cfg, cer.TaskType)},
		pg.DB, leads, sysClock, log,
	).Handle)

	start(ne.TaskType, ne.NewHandler(
		ne.ConfigFrom(cfg.Notifications, workerTimeout(cfg, ne.TaskType)),
		emailSender, smsSender, sysClock, log,
	).Handle)

	start(pcm.TaskType, pcm.NewHandler(
		&pcm.Config{Timeout: workerTimeout(cfg, pcm.TaskType)},
		chat, sessions, chatLogs, log,
	).Handle)

	start(rcs.TaskType, rcs.NewHandler(
		&rcs.Config{Timeout: workerTimeout(cfg, rcs.TaskType)},
		chat, sessions, log,
	).Handle)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		for name, check := range map[string]func(context.Context) error{
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
			"zeebe":    zeebe.HealthCheck,
		} {
			if err := check(checkCtx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeJSON(w, status, map[string]interface{}{
			"status": state,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
