package gallery

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/gallery"
	"github.com/lumiso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage is implemented by the storage adapters (S3-compatible or in-memory stub)
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PresignDownload(ctx context.Context, key, fileName string, ttl time.Duration) (PresignedURL, error)
}

// PresignedURL is a time-limited download link
type PresignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// ContentDisposition builds the attachment header value for a download name.
// Non-ASCII names also get an RFC 5987 filename* parameter.
func ContentDisposition(fileName string) string {
	quoted := strings.NewReplacer(`"`, "_", `\`, "_").Replace(fileName)
	v := `attachment; filename="` + quoted + `"`
	for i := 0; i < len(fileName); i++ {
		if fileName[i] >= utf8.RuneSelf {
			return v + "; filename*=UTF-8''" + url.PathEscape(fileName)
		}
	}
	return v
}

// DownloadURLRequest asks for a download link to one gallery object
type DownloadURLRequest struct {
	ObjectKey string `json:"object_key" binding:"required,max=1024"`
	Title     string `json:"title" binding:"max=200"`
	// Extension overrides the extension taken from the object key
	Extension string `json:"extension" binding:"max=16"`
}

// DownloadURLResponse is a presigned link plus the name the browser will save
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadResponse describes a stored gallery file
type UploadResponse struct {
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
	Size      int64  `json:"size"`
}

// DownloadMetrics records issued download links
type DownloadMetrics interface {
	DownloadLinkIssued(ctx context.Context, tenantID uuid.UUID)
}

type nopDownloadMetrics struct{}

func (nopDownloadMetrics) DownloadLinkIssued(context.Context, uuid.UUID) {}

// DownloadServiceOption configures a DownloadService
type DownloadServiceOption func(*DownloadService)

// WithDownloadMetrics sets the metrics recorder
func WithDownloadMetrics(m DownloadMetrics) DownloadServiceOption {
	return func(s *DownloadService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// DownloadService hands out gallery download links and stores client selections.
// Storage failures come back as shared.Result so callers can tell a transient
// outage from a request that will never succeed.
type DownloadService struct {
	storage ObjectStorage
	ttl     time.Duration
	logger  *zap.Logger
	metrics DownloadMetrics
}

// NewDownloadService creates a new DownloadService
func NewDownloadService(storage ObjectStorage, ttl time.Duration, logger *zap.Logger, opts ...DownloadServiceOption) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	s := &DownloadService{storage: storage, ttl: ttl, logger: logger, metrics: nopDownloadMetrics{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DownloadURL presigns a GET for an object inside the gallery. The saved file
// name is the sanitized title plus the object's extension.
func (s *DownloadService) DownloadURL(ctx context.Context, tenantID, galleryID uuid.UUID, req DownloadURLRequest) shared.Result[*DownloadURLResponse] {
	if err := gallery.ValidateObjectKey(tenantID, galleryID, req.ObjectKey); err != nil {
		return shared.Fatal[*DownloadURLResponse](err)
	}

	exists, err := s.storage.Exists(ctx, req.ObjectKey)
	if err != nil {
		return s.failure("check object", req.ObjectKey, err)
	}
	if !exists {
		return shared.Fatal[*DownloadURLResponse](shared.NewDomainError("NOT_FOUND", "Gallery file not found"))
	}

	ext := req.Extension
	if ext == "" {
		ext = path.Ext(req.ObjectKey)
	}
	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(path.Base(req.ObjectKey), path.Ext(req.ObjectKey))
	}
	fileName := gallery.DownloadFileName(title, ext)

	presigned, err := s.storage.PresignDownload(ctx, req.ObjectKey, fileName, s.ttl)
	if err != nil {
		return s.failure("presign download", req.ObjectKey, err)
	}

	s.metrics.DownloadLinkIssued(ctx, tenantID)
	return shared.Ok(&DownloadURLResponse{
		URL:       presigned.URL,
		FileName:  fileName,
		ObjectKey: req.ObjectKey,
		ExpiresAt: presigned.ExpiresAt,
	})
}

// UploadSelection stores a client's selection under the gallery prefix
func (s *DownloadService) UploadSelection(
	ctx context.Context,
	tenantID, galleryID uuid.UUID,
	fileName string,
	body io.Reader,
	size int64,
	contentType string,
) shared.Result[*UploadResponse] {
	key := gallery.ObjectKey(tenantID, galleryID, fileName)

	if err := s.storage.Upload(ctx, key, body, size, contentType); err != nil {
		return failureOf[*UploadResponse](s.logger, "upload selection", key, err)
	}

	return shared.Ok(&UploadResponse{
		ObjectKey: key,
		FileName:  path.Base(key),
		Size:      size,
	})
}

// DeleteFile removes an object inside the gallery
func (s *DownloadService) DeleteFile(ctx context.Context, tenantID, galleryID uuid.UUID, key string) shared.Result[struct{}] {
	if err := gallery.ValidateObjectKey(tenantID, galleryID, key); err != nil {
		return shared.Fatal[struct{}](err)
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return failureOf[struct{}](s.logger, "delete file", key, err)
	}
	return shared.Ok(struct{}{})
}

func (s *DownloadService) failure(op, key string, err error) shared.Result[*DownloadURLResponse] {
	return failureOf[*DownloadURLResponse](s.logger, op, key, err)
}

func failureOf[T any](logger *zap.Logger, op, key string, err error) shared.Result[T] {
	result := shared.Err[T](fmt.Errorf("%s: %w", op, err))
	logger.Warn("Gallery storage operation failed",
		zap.String("operation", op),
		zap.String("object_key", key),
		zap.Stringer("kind", result.Kind()),
		zap.Error(err),
	)
	return result
}
