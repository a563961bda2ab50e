package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
)

// allowedExtensions maps sniffed file extensions to whether they may be stored.
// The set mirrors the media kinds the marketplace presents: images, audio,
// video, plain documents and JSON metadata.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".mp4":  true,
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".pdf":  true,
	".json": true,
	".txt":  true,
	".html": true,
	".glb":  true,
}

// Config holds the upload service configuration
type Config struct {
	// StorageDir is the local directory objects are written to
	StorageDir string
	// PublicBaseURL prefixes returned object URLs
	PublicBaseURL string
	// MaxFileSize caps a single object in bytes
	MaxFileSize int64
}

// StoredObject describes a persisted upload
type StoredObject struct {
	// ObjectName is the ULID-based file name the object was stored under
	ObjectName string `json:"object_name"`
	// URL is the public URL the object can be retrieved from
	URL string `json:"url"`
	// ContentType is the sniffed MIME type of the stored content
	ContentType string `json:"content_type"`
	// Size is the stored object size in bytes
	Size int64 `json:"size"`
}

// Service stores marketplace objects and hands back retrievable URLs
//
//go:generate mockgen -source=service.go -destination=../mocks/uploads.go -package=mocks -mock_names=Service=MockUploadService
type Service interface {
	// StoreFile persists an uploaded file under a ULID object name. The
	// content type is sniffed from the content, never trusted from the caller.
	StoreFile(ctx context.Context, r io.Reader) (*StoredObject, error)

	// StoreJSON persists a JSON document under a ULID object name
	StoreJSON(ctx context.Context, document interface{}) (*StoredObject, error)
}

type service struct {
	config Config
	fs     adapter.FileSystem
	ioa    adapter.IO
	json   adapter.JSON
	jcs    adapter.JCS
	clock  adapter.Clock
}

// NewService creates a new upload service writing to local disk
func NewService(cfg Config, fs adapter.FileSystem, ioa adapter.IO, json adapter.JSON, jcs adapter.JCS, clock adapter.Clock) (Service, error) {
	if err := fs.MkdirAll(cfg.StorageDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &service{
		config: cfg,
		fs:     fs,
		ioa:    ioa,
		json:   json,
		jcs:    jcs,
		clock:  clock,
	}, nil
}

// StoreFile persists an uploaded file under a ULID object name
func (s *service) StoreFile(ctx context.Context, r io.Reader) (*StoredObject, error) {
	// Read one byte past the limit so oversized uploads are detected without
	// buffering the whole stream
	content, err := s.ioa.ReadAll(io.LimitReader(r, s.config.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if int64(len(content)) > s.config.MaxFileSize {
		return nil, domain.ErrUploadTooLarge
	}
	if len(content) == 0 {
		return nil, domain.ErrEmptyUpload
	}

	mtype := mimetype.Detect(content)
	ext := strings.ToLower(mtype.Extension())
	if !allowedExtensions[ext] {
		logger.WarnCtx(ctx, "Rejected upload with unsupported content type",
			zap.String("content_type", mtype.String()),
			zap.String("extension", ext),
		)
		return nil, domain.ErrUnsupportedUploadType
	}

	return s.store(ctx, content, ext, mtype.String())
}

// StoreJSON persists a JSON document under a ULID object name. Documents are
// stored in JCS canonical form so equal documents always produce identical
// stored bytes.
func (s *service) StoreJSON(ctx context.Context, document interface{}) (*StoredObject, error) {
	content, err := s.json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	content, err = s.jcs.Transform(content)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	if int64(len(content)) > s.config.MaxFileSize {
		return nil, domain.ErrUploadTooLarge
	}

	return s.store(ctx, content, ".json", "application/json")
}

// store writes the content under a fresh ULID object name and returns its
// public URL
func (s *service) store(ctx context.Context, content []byte, ext, contentType string) (*StoredObject, error) {
	objectName := ulid.MustNewDefault(s.clock.Now()).String() + ext
	fullPath := filepath.Join(s.config.StorageDir, objectName)

	f, err := s.fs.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create object file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(fullPath)
		return nil, fmt.Errorf("failed to write object file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(fullPath)
		return nil, fmt.Errorf("failed to close object file: %w", err)
	}

	logger.InfoCtx(ctx, "Stored upload",
		zap.String("object_name", objectName),
		zap.String("content_type", contentType),
		zap.Int("size", len(content)),
	)

	return &StoredObject{
		ObjectName:  objectName,
		URL:         strings.TrimSuffix(s.config.PublicBaseURL, "/") + "/uploads/" + objectName,
		ContentType: contentType,
		Size:        int64(len(content)),
	}, nil
}
