package main

import (
	"context"
	"os"

	"github.com/nullvectorcodes/atm-machine/internal/amqp"
	"github.com/nullvectorcodes/atm-machine/internal/cli"
	"github.com/nullvectorcodes/atm-machine/internal/core"
	"github.com/nullvectorcodes/atm-machine/internal/ledger"
	"github.com/nullvectorcodes/atm-machine/internal/services"
	"github.com/nullvectorcodes/atm-machine/internal/terminal"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenStore(logger, cfg)
	defer store.Close()

	ctx := context.Background()

	accountLedger, err := ledger.Load(ctx, store)
	if err != nil {
		logger.Error("Failed to load accounts", "error", err)
		os.Exit(1)
	}

	// First run: install sample accounts so the terminal is usable.
	if accountLedger.Empty() {
		logger.Info("No accounts found, seeding sample accounts")
		err := accountLedger.Seed(ctx, []core.Account{
			{Number: 1001, PIN: 1234, Balance: core.Money{Cents: 1500000}, Name: "Zaid"},
			{Number: 1002, PIN: 2345, Balance: core.Money{Cents: 500000}, Name: "Anita"},
			{Number: 1003, PIN: 3456, Balance: core.Money{Cents: 2000000}, Name: "Ravi"},
		})
		if err != nil {
			logger.Error("Failed to seed accounts", "error", err)
			os.Exit(1)
		}
	}

	inventory, err := store.LoadInventory(ctx)
	if err != nil {
		logger.Error("Failed to load inventory", "error", err)
		os.Exit(1)
	}
	if err := store.SaveInventory(ctx, inventory); err != nil {
		logger.Warn("Failed to persist initial inventory", "error", err)
	}

	// The back-office feed is optional: without a broker the terminal runs
	// standalone.
	var svc *services.Service
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Back-office feed unavailable, continuing without it", "error", err)
			svc = services.New(accountLedger, inventory, store, nil)
		} else {
			defer amqpClient.Close()
			logger.Info("Back-office feed connected",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			svc = services.New(accountLedger, inventory, store, amqpClient)
		}
	} else {
		svc = services.New(accountLedger, inventory, store, nil)
	}

	logger.Info("Starting ATM terminal",
		"backend", cfg.StorageBackend,
		"total_cash", inventory.TotalValue())

	session := terminal.New(svc, cfg.AdminPIN, os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil {
		logger.Error("Terminal session failed", "error", err)
		os.Exit(1)
	}

	// Final save on the way out, like every state-changing operation.
	if err := accountLedger.Persist(ctx); err != nil {
		logger.Error("Failed to persist accounts on exit", "error", err)
	}
	if err := store.SaveInventory(ctx, inventory); err != nil {
		logger.Error("Failed to persist inventory on exit", "error", err)
	}
	logger.Info("Terminal stopped")
}
