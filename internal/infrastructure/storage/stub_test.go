package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStubObjectStorage(t *testing.T) {
	s := NewStubObjectStorage()
	require.NotNil(t, s)
	assert.Equal(t, "https://storage.example.com", s.BaseURL)
}

func TestStubObjectStorage_UploadExistsDelete(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()
	key := "tenants/t/galleries/g/selection.zip"

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, key, strings.NewReader("zip-bytes"), 9, "application/zip"))

	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStubObjectStorage_EmptyKey(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	assert.ErrorIs(t, s.Upload(ctx, "", strings.NewReader(""), 0, ""), ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyKey)
	_, err := s.Exists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = s.PresignDownload(ctx, "", "a.jpg", time.Minute)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestStubObjectStorage_PresignDownload(t *testing.T) {
	s := NewStubObjectStorage()

	presigned, err := s.PresignDownload(context.Background(), "tenants/t/galleries/g/a.jpg", "wedding.jpg", time.Hour)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(presigned.URL, "https://storage.example.com/download/tenants/t/galleries/g/a.jpg?"))
	assert.True(t, presigned.ExpiresAt.After(time.Now()))

	u, err := url.Parse(presigned.URL)
	require.NoError(t, err)
	assert.Equal(t, `attachment; filename="wedding.jpg"`, u.Query().Get("response-content-disposition"))
}
