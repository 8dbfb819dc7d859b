package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/horizon/internal/cli"
	"github.com/alexanderramin/horizon/internal/config"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/remote"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	expenseRepo := repository.NewSQLiteExpenseRepo(database)
	documentRepo := repository.NewSQLiteDocumentRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	importSvc := service.NewImportService(uow, observers...)

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, observers...),
		Users:      service.NewUserService(userRepo),
		Resources:  service.NewResourceService(resourceRepo, uow, observers...),
		Expenses:   service.NewExpenseService(expenseRepo, projectRepo, uow, observers...),
		Milestones: service.NewMilestoneService(milestoneRepo),
		Documents:  service.NewDocumentService(cfg.UploadsDir, documentRepo, projectRepo, uow, observers...),
		Timeline:   service.NewTimelineService(projectRepo, observers...),
		Dashboard:  service.NewDashboardService(projectRepo, expenseRepo, milestoneRepo),
		Overview:   service.NewOverviewService(projectRepo, resourceRepo, milestoneRepo, expenseRepo, documentRepo, observers...),
		Import:     importSvc,

		RefreshInterval: cfg.RefreshInterval(),
	}

	// Wire the remote backend only when a base URL is configured
	remoteCfg := cfg.RemoteClientConfig()
	if remoteCfg.Enabled() {
		var observer remote.Observer = remote.NoopObserver{}
		if remoteCfg.LogCalls {
			observer = remote.NewLogObserver(os.Stderr)
		}
		app.Sync = service.NewSyncService(remote.NewClient(remoteCfg, observer), importSvc, observers...)
	}

	// Forms and the live dashboard need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
