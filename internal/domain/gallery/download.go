package gallery

import (
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// DownloadFileName builds "<sanitized title><ext>" for an attachment.
// ext may be given with or without its leading dot.
func DownloadFileName(title, ext string) string {
	base := SanitizeFileBasename(title)
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + SanitizeFileBasename(ext)
}

// ObjectKey returns the storage key of a file in a gallery. Names made only of
// dots would be resolved as path elements and are replaced by DefaultBasename.
func ObjectKey(tenantID, galleryID uuid.UUID, fileName string) string {
	base := SanitizeFileBasename(fileName)
	if strings.Trim(base, ".") == "" {
		base = DefaultBasename
	}
	return path.Join("tenants", tenantID.String(), "galleries", galleryID.String(), base)
}

// ValidateObjectKey ensures a caller supplied key stays inside a gallery's prefix
func ValidateObjectKey(tenantID, galleryID uuid.UUID, key string) error {
	prefix := path.Join("tenants", tenantID.String(), "galleries", galleryID.String()) + "/"
	cleaned := path.Clean(key)
	if !strings.HasPrefix(cleaned, prefix) || cleaned != key {
		return shared.NewDomainError("INVALID_OBJECT_KEY", "Object key does not belong to this gallery")
	}
	return nil
}
