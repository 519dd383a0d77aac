package storage

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ============================================================================
// Unit Tests (no external dependencies)
// ============================================================================

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:            "galleries",
			AccessKey:         "k",
			SecretKey:         "s",
			Endpoint:          "http://localhost:9000",
			UsePathStyle:      true,
			PresignExpiration: 10 * time.Minute,
		})
		require.NoError(t, err)
		assert.Equal(t, "galleries", storage.Bucket())
		assert.Equal(t, 10*time.Minute, storage.presignExpiration)
	})

	t.Run("default presign expiration is 15 minutes", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})

	t.Run("option overrides presign expiration", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(
			&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"},
			WithPresignExpiration(time.Hour),
			WithLogger(zaptest.NewLogger(t)),
		)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, storage.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		want     string
		wantErr  bool
	}{
		{name: "empty uses local default", endpoint: "", want: "http://localhost:9000"},
		{name: "adds http", endpoint: "minio:9000", want: "http://minio:9000"},
		{name: "adds https with ssl", endpoint: "s3.example.com", useSSL: true, want: "https://s3.example.com"},
		{name: "keeps scheme", endpoint: "https://s3.eu-west-1.amazonaws.com", want: "https://s3.eu-west-1.amazonaws.com"},
		{name: "missing host", endpoint: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestS3ObjectStorage_PresignDownload(t *testing.T) {
	storage, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:       "galleries",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	presigned, err := storage.PresignDownload(context.Background(), "tenants/t/galleries/g/a.jpg", "smith_wedding.jpg", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(presigned.URL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/galleries/tenants/t/galleries/g/a.jpg", u.Path)
	assert.Equal(t, `attachment; filename="smith_wedding.jpg"`, u.Query().Get("response-content-disposition"))
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), presigned.ExpiresAt, 5*time.Second)

	_, err = storage.PresignDownload(context.Background(), "", "a.jpg", time.Minute)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

// fakeS3 is a minimal path-style S3 endpoint for PUT, HEAD and DELETE
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if _, ok := f.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3ObjectStorage_AgainstFakeEndpoint(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	storage, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:       "galleries",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     srv.URL,
		UsePathStyle: true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	key := "tenants/t/galleries/g/selection.txt"

	exists, err := storage.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// io.MultiReader hides Seek, forcing the buffered path
	body := io.MultiReader(strings.NewReader("hello "), strings.NewReader("gallery"))
	require.NoError(t, storage.Upload(ctx, key, body, -1, "text/plain"))

	fake.mu.Lock()
	stored := fake.objects["/galleries/"+key]
	fake.mu.Unlock()
	assert.Contains(t, stored, "hello gallery")

	exists, err = storage.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, storage.Delete(ctx, key))
	exists, err = storage.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	storage, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, storage.Upload(ctx, "", strings.NewReader("x"), 1, ""), ErrEmptyKey)
	assert.ErrorIs(t, storage.Delete(ctx, ""), ErrEmptyKey)
	_, err = storage.Exists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want shared.ErrorKind
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: shared.KindRetryable},
		{name: "dial failure", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: shared.KindRetryable},
		{name: "canceled", err: context.Canceled, want: shared.KindFatal},
		{name: "access denied", err: errors.New("AccessDenied"), want: shared.KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.Classify(classify(tt.err)))
		})
	}
	assert.NoError(t, classify(nil))
}
