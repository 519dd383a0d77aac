package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	galleryapp "github.com/lumiso/backend/internal/application/gallery"
	"github.com/lumiso/backend/internal/domain/gallery"
	"github.com/lumiso/backend/internal/interfaces/http/dto"
)

// GalleryHandler handles gallery downloads and client selections
type GalleryHandler struct {
	BaseHandler
	downloads *galleryapp.DownloadService
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(downloads *galleryapp.DownloadService) *GalleryHandler {
	return &GalleryHandler{downloads: downloads}
}

// DeleteFileQuery names the object to remove
type DeleteFileQuery struct {
	ObjectKey string `form:"object_key" binding:"required,max=1024"`
}

// SanitizeQuery is the input of the file name utility. When Extension is set
// the response also carries the full download name.
type SanitizeQuery struct {
	Value     string `form:"value" binding:"max=1000"`
	Extension string `form:"extension" binding:"max=16"`
}

// SanitizeResponse is the output of the file name utility
type SanitizeResponse struct {
	Basename string `json:"basename"`
	FileName string `json:"file_name,omitempty"`
}

// DownloadURL handles POST /galleries/:id/download-url
func (h *GalleryHandler) DownloadURL(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	galleryID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req galleryapp.DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result := h.downloads.DownloadURL(c.Request.Context(), tenantID, galleryID, req)
	if !result.IsOk() {
		h.HandleResultError(c, result.Err(), result.Kind())
		return
	}
	h.Success(c, result.Value())
}

// Upload handles POST /galleries/:id/files as a multipart form with a "file" part
func (h *GalleryHandler) Upload(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	galleryID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Multipart field \"file\" is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	result := h.downloads.UploadSelection(c.Request.Context(), tenantID, galleryID, header.Filename, file, header.Size, contentType)
	if !result.IsOk() {
		h.HandleResultError(c, result.Err(), result.Kind())
		return
	}
	h.Created(c, result.Value())
}

// DeleteFile handles DELETE /galleries/:id/files
func (h *GalleryHandler) DeleteFile(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	galleryID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var query DeleteFileQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	result := h.downloads.DeleteFile(c.Request.Context(), tenantID, galleryID, query.ObjectKey)
	if !result.IsOk() {
		h.HandleResultError(c, result.Err(), result.Kind())
		return
	}
	h.NoContent(c)
}

// Sanitize handles GET /files/sanitize
func (h *GalleryHandler) Sanitize(c *gin.Context) {
	var query SanitizeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	resp := SanitizeResponse{Basename: gallery.SanitizeFileBasename(query.Value)}
	if query.Extension != "" {
		resp.FileName = gallery.DownloadFileName(query.Value, query.Extension)
	}
	h.Success(c, resp)
}
