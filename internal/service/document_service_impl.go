package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type documentService struct {
	uploadsDir string
	documents  repository.DocumentRepo
	projects   repository.ProjectRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewDocumentService(
	uploadsDir string,
	documents repository.DocumentRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) DocumentService {
	return &documentService{
		uploadsDir: uploadsDir,
		documents:  documents,
		projects:   projects,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Upload copies the source file into <uploads>/<project>/<id><ext> and
// records it as the next version of the named document in its folder.
func (s *documentService) Upload(ctx context.Context, req UploadRequest) (doc *domain.Document, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "source": req.SourcePath}
	defer func() { observeUseCase(ctx, s.observer, "upload-document", startedAt, fields, err) }()

	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading upload source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("upload source %q is a directory", req.SourcePath)
	}

	filename := filepath.Base(req.SourcePath)
	id := uuid.New().String()
	dest := filepath.Join(s.uploadsDir, req.ProjectID, id+strings.ToLower(filepath.Ext(filename)))

	size, err := copyFile(req.SourcePath, dest)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	doc = &domain.Document{
		ID:         id,
		ProjectID:  req.ProjectID,
		Name:       domain.CoalesceStr(strings.TrimSpace(req.Name), filename),
		Filename:   filename,
		FolderPath: domain.NormalizeFolder(req.FolderPath),
		FilePath:   dest,
		FileSize:   size,
		Status:     domain.DocumentDraft,
		UploadedBy: domain.CoalesceStr(req.UploadedBy, "user"),
		UploadedAt: time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDocs := repository.NewSQLiteDocumentRepo(tx)
		n, err := txDocs.CountVersions(ctx, doc.ProjectID, doc.FolderPath, doc.Name)
		if err != nil {
			return err
		}
		doc.Version = n + 1
		return txDocs.Create(ctx, doc)
	})
	if err != nil {
		_ = os.Remove(dest)
		return nil, err
	}
	fields["version"] = doc.Version
	return doc, nil
}

func (s *documentService) List(ctx context.Context, projectID, folder string) ([]*domain.Document, error) {
	if folder != "" {
		folder = domain.NormalizeFolder(folder)
	}
	return s.documents.ListByProject(ctx, projectID, folder)
}

func (s *documentService) Approve(ctx context.Context, id, approvedBy string) (*domain.Document, error) {
	if strings.TrimSpace(approvedBy) == "" {
		return nil, fmt.Errorf("approver is required")
	}
	if err := s.documents.Approve(ctx, id, approvedBy, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.documents.GetByID(ctx, id)
}

func (s *documentService) Download(ctx context.Context, id string, w io.Writer) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, ok := s.storedPath(doc.FilePath)
	if !ok {
		return nil, fmt.Errorf("document file for %s is not stored locally: %w", doc.ID, repository.ErrNotFound)
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("document file %s: %w", doc.FilePath, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("opening document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return nil, fmt.Errorf("copying document file: %w", err)
	}
	return doc, nil
}

// storedPath resolves p and reports whether it lies inside the uploads
// directory. Imported and synced records carry paths from the backend's
// disk, which are never served.
func (s *documentService) storedPath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	root, err := filepath.Abs(s.uploadsDir)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

func copyFile(src, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return 0, err
	}
	return n, nil
}
