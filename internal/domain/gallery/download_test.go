package gallery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDownloadFileName(t *testing.T) {
	assert.Equal(t, "smith_wedding.zip", DownloadFileName("Smith Wedding", ".ZIP"))
	assert.Equal(t, "selection.pdf", DownloadFileName("", "pdf"))
	assert.Equal(t, "proofs", DownloadFileName("Proofs", ""))
}

func TestObjectKey(t *testing.T) {
	tenantID, galleryID := uuid.New(), uuid.New()

	key := ObjectKey(tenantID, galleryID, "Final Selects.zip")

	assert.Equal(t, "tenants/"+tenantID.String()+"/galleries/"+galleryID.String()+"/final_selects.zip", key)
	assert.NoError(t, ValidateObjectKey(tenantID, galleryID, key))
}

func TestObjectKey_DotNames(t *testing.T) {
	tenantID, galleryID := uuid.New(), uuid.New()
	prefix := "tenants/" + tenantID.String() + "/galleries/" + galleryID.String() + "/"

	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"parent directory", "..", prefix + DefaultBasename},
		{"current directory", ".", prefix + DefaultBasename},
		{"padded parent directory", "  ..  ", prefix + DefaultBasename},
		{"three dots", "...", prefix + DefaultBasename},
		{"leading dot kept", ".hidden.jpg", prefix + ".hidden.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey(tenantID, galleryID, tt.fileName)

			assert.Equal(t, tt.want, key)
			assert.NoError(t, ValidateObjectKey(tenantID, galleryID, key))
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tenantID, galleryID := uuid.New(), uuid.New()
	prefix := "tenants/" + tenantID.String() + "/galleries/" + galleryID.String()

	assert.Error(t, ValidateObjectKey(tenantID, galleryID, prefix+"/../other/file.jpg"))
	assert.Error(t, ValidateObjectKey(tenantID, uuid.New(), prefix+"/file.jpg"))
	assert.Error(t, ValidateObjectKey(tenantID, galleryID, prefix))
}
