package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/importer"
	"github.com/alexanderramin/horizon/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	snapshot, err := importer.LoadSnapshot(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSnapshot(ctx, snapshot)
}

// ImportSnapshot validates the snapshot and writes it in one transaction.
// Records are upserted by id; records without one are inserted fresh.
func (s *importService) ImportSnapshot(ctx context.Context, snapshot *importer.Snapshot) (result *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"projects": len(snapshot.Projects)}
	defer func() { observeUseCase(ctx, s.observer, "import-snapshot", startedAt, fields, err) }()

	if errs := importer.ValidateSnapshot(snapshot); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.ConvertSnapshot(snapshot, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("converting snapshot: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txResources := repository.NewSQLiteResourceRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txExpenses := repository.NewSQLiteExpenseRepo(tx)
		txDocs := repository.NewSQLiteDocumentRepo(tx)

		for _, u := range converted.Users {
			if err := txUsers.Upsert(ctx, u); err != nil {
				return fmt.Errorf("importing user %q: %w", u.Name, err)
			}
		}
		for _, p := range converted.Projects {
			if err := txProjects.Upsert(ctx, p); err != nil {
				return fmt.Errorf("importing project %q: %w", p.Name, err)
			}
		}
		for _, r := range converted.Resources {
			if err := txResources.Upsert(ctx, r); err != nil {
				return fmt.Errorf("importing resource %q: %w", r.Name, err)
			}
		}
		for _, m := range converted.Milestones {
			if err := txMilestones.Upsert(ctx, m); err != nil {
				return fmt.Errorf("importing milestone %q: %w", m.Title, err)
			}
		}
		for _, e := range converted.Expenses {
			if err := txExpenses.Upsert(ctx, e); err != nil {
				return fmt.Errorf("importing expense %q: %w", e.Description, err)
			}
		}
		for _, d := range converted.Documents {
			if err := txDocs.Upsert(ctx, d); err != nil {
				return fmt.Errorf("importing document %q: %w", d.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Projects:   converted.Projects,
		Users:      len(converted.Users),
		Resources:  len(converted.Resources),
		Milestones: len(converted.Milestones),
		Expenses:   len(converted.Expenses),
		Documents:  len(converted.Documents),
	}
	fields["resources"] = result.Resources
	fields["expenses"] = result.Expenses
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
