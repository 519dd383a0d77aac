package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperSize(t *testing.T) {
	assert.True(t, PaperSizeA4.IsValid())
	assert.True(t, PaperSizeLetter.IsValid())
	assert.False(t, PaperSize("A3").IsValid())

	w, h := PaperSize("unknown").Dimensions()
	assert.Equal(t, 210.0, w)
	assert.Equal(t, 297.0, h)
}

func TestRenderError(t *testing.T) {
	cause := errors.New("websocket closed")

	err := NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)

	assert.Equal(t, "chromedp execution failed: websocket closed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "render failed", NewRenderError(ErrCodeRenderFailed, "render failed", nil).Error())
}

func TestRenderError_Classification(t *testing.T) {
	timeout := NewRenderError(ErrCodeRenderTimeout, "PDF rendering timed out", nil)
	failed := NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)

	assert.Equal(t, shared.KindRetryable, shared.Classify(timeout))
	assert.Equal(t, shared.KindFatal, shared.Classify(failed))
}

func TestDisabledRenderer(t *testing.T) {
	var r PDFRenderer = DisabledRenderer{}

	_, err := r.Render(context.Background(), &RenderRequest{HTML: "<p>x</p>"})

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRendererDisabled, renderErr.Code)
	assert.NoError(t, r.Close())
}
