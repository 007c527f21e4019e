package attachment

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"timedesk/internal/domain"
	"timedesk/internal/pkg/token"
)

const (
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50 MB
	DefaultBaseDir     = "./uploads"
)

type ticketLookup interface {
	Exists(ctx context.Context, ticketID string) (bool, error)
}

// Service stores ticket attachments: metadata row in the database,
// payload at <baseDir>/<ticketID>/<attachmentID><ext> on disk.
//
// Write protocol: record first, then file; on a failed write the
// partial file is removed, then the record. A crash between record and
// file leaves an orphan record, which reads treat as a storage
// inconsistency, never as success.
//
// Delete protocol runs the other way: record first, then best-effort
// file removal. A crash in between strands an inert orphan file rather
// than a record that would break reads. The asymmetry is deliberate.
type Service struct {
	repo    Repository
	tickets ticketLookup
	baseDir string
	maxSize int64
}

func NewService(repo Repository, tickets ticketLookup, baseDir string, maxSize int64) *Service {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Service{repo: repo, tickets: tickets, baseDir: baseDir, maxSize: maxSize}
}

// Upload streams size bytes from body into storage and records the
// attachment. size must be the declared payload length; the caller
// checks the length header exists before the body is ever read.
func (s *Service) Upload(ctx context.Context, principal domain.Principal, ticketID, name, contentType string, size int64, body io.Reader) (*Attachment, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !token.Valid(ticketID) {
		return nil, ErrInvalidTicketID
	}
	if size < 0 {
		return nil, ErrLengthRequired
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrEmptyName
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ok, err := s.tickets.Exists(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return nil, ErrTicketNotFound
	}

	a := &Attachment{
		ID:          uuid.New().String(),
		Name:        name,
		Extension:   strings.ToLower(filepath.Ext(name)),
		Size:        size,
		ContentType: contentType,
		CreatorID:   principal.ID,
		TicketID:    ticketID,
	}

	// Record first: reserves the identifier before any filesystem
	// write.
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	path := a.Path(s.baseDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, s.rollbackUpload(ctx, a, path, err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return nil, s.rollbackUpload(ctx, a, path, err)
	}

	written, err := io.Copy(dst, io.LimitReader(body, size))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written != size {
		err = fmt.Errorf("short payload: declared %d bytes, got %d", size, written)
	}
	if err != nil {
		return nil, s.rollbackUpload(ctx, a, path, err)
	}

	return a, nil
}

// rollbackUpload undoes a failed write: partial file first, then the
// just-created record.
func (s *Service) rollbackUpload(ctx context.Context, a *Attachment, path string, cause error) error {
	// The write may have failed because the caller went away; the
	// record delete must still run, so detach from cancellation.
	ctx = context.WithoutCancel(ctx)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("attachment rollback: removing partial file %s: %v", path, err)
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		log.Printf("attachment rollback: deleting record %s: %v", a.ID, err)
	}
	log.Printf("attachment upload failed id=%s ticket=%s: %v", a.ID, a.TicketID, cause)
	return fmt.Errorf("%w: write aborted", ErrStorage)
}

// Open returns the attachment metadata and an open handle on its file
// for a principal the visibility policy admits. When expectedName is
// non-empty it must match the stored name exactly; a mismatch looks
// identical to a missing attachment.
func (s *Service) Open(ctx context.Context, principal domain.Principal, id, expectedName string) (*Attachment, *os.File, error) {
	if !principal.Authenticated() {
		return nil, nil, ErrUnauthenticated
	}
	// Attachment ids are opaque uuids; anything else never touches a
	// query or a path.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrNotFound
	}

	a, err := s.repo.FindVisible(ctx, id, principal.ID)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if expectedName != "" && expectedName != a.Name {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(a.Path(s.baseDir))
	if err != nil {
		// A visible record without its file is an internal
		// inconsistency (crash window of the write protocol), not a
		// not-found.
		log.Printf("attachment %s: record present, file missing at %s: %v", a.ID, a.Path(s.baseDir), err)
		return nil, nil, fmt.Errorf("%w: file missing for record", ErrStorage)
	}

	return a, f, nil
}

// Delete removes an attachment. Admins may delete any; others only
// their own. Record goes first; file removal is best-effort and
// idempotent.
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if !principal.Authenticated() {
		return ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	a, err := s.repo.FindDeletable(ctx, id, principal.ID, principal.IsAdmin())
	if err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := os.Remove(a.Path(s.baseDir)); err != nil && !os.IsNotExist(err) {
		log.Printf("attachment %s: removing file after record delete: %v", a.ID, err)
	}

	return nil
}

// ListForTicket returns the ticket's attachments the principal may see.
func (s *Service) ListForTicket(ctx context.Context, principal domain.Principal, ticketID string) ([]*Attachment, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !token.Valid(ticketID) {
		return nil, ErrInvalidTicketID
	}
	return s.repo.ListVisibleForTicket(ctx, ticketID, principal.ID)
}
