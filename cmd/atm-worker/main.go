package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nullvectorcodes/atm-machine/internal/amqp"
	"github.com/nullvectorcodes/atm-machine/internal/cli"
	"github.com/nullvectorcodes/atm-machine/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting atm-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	auditWorker, err := worker.NewAuditWorker(cfg.AuditLogPath)
	if err != nil {
		logger.Error("Failed to initialize audit worker", "error", err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := amqpClient.ConsumeTransactions(gctx, auditWorker.HandleTransaction)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logger.Info("atm-worker consuming",
		"queue", cfg.AMQPQueue,
		"audit_log", cfg.AuditLogPath)

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("atm-worker stopped")
}
