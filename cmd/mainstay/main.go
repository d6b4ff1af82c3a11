package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/mainstay/internal/cli"
	"github.com/alexanderramin/mainstay/internal/config"
	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/maintenance"
	"github.com/alexanderramin/mainstay/internal/repository"
	"github.com/alexanderramin/mainstay/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine config path: env var or default ~/.mainstay/config.yaml
	cfgPath := os.Getenv("MAINSTAY_CONFIG")
	if cfgPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfgPath = filepath.Join(home, ".mainstay", "config.yaml")
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Strip colors when piped or explicitly disabled.
	if os.Getenv("NO_COLOR") != "" ||
		(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	equipmentRepo := repository.NewSQLiteEquipmentRepo(database)
	inventoryRepo := repository.NewSQLiteInventoryRepo(database)
	workOrderRepo := repository.NewSQLiteWorkOrderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.OperationObserver = service.NoopOperationObserver{}
	if cfg.LogOperations {
		observer = service.NewLogOperationObserver(os.Stderr)
	}

	classifier := maintenance.Classifier{
		PercentThreshold: cfg.Urgency.PercentThreshold,
		DaysThreshold:    cfg.Urgency.DaysThreshold,
	}
	clock := service.SystemClock()

	app := &cli.App{
		Equipment:  service.NewEquipmentService(equipmentRepo, clock, classifier, observer),
		Inventory:  service.NewInventoryService(inventoryRepo, clock, observer),
		WorkOrders: service.NewWorkOrderService(workOrderRepo, inventoryRepo, uow, clock, observer),
	}

	return cli.NewRootCmd(app).Execute()
}
