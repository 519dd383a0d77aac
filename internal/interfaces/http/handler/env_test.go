package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	calendarapp "github.com/lumiso/backend/internal/application/calendar"
	galleryapp "github.com/lumiso/backend/internal/application/gallery"
	leadapp "github.com/lumiso/backend/internal/application/lead"
	onboardingapp "github.com/lumiso/backend/internal/application/onboarding"
	pricingapp "github.com/lumiso/backend/internal/application/pricing"
	"github.com/lumiso/backend/internal/infrastructure/persistence"
	"github.com/lumiso/backend/internal/infrastructure/persistence/models"
	"github.com/lumiso/backend/internal/infrastructure/storage"
	"github.com/lumiso/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires real services over an in-memory SQLite database
type testEnv struct {
	engine   *gin.Engine
	tenantID uuid.UUID
	userID   uuid.UUID
	storage  *storage.StubObjectStorage
}

var setupValidator sync.Once

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	setupValidator.Do(middleware.SetupValidator)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	leadRepo := persistence.NewGormLeadRepository(db)
	statusRepo := persistence.NewGormLeadStatusRepository(db)
	serviceRepo := persistence.NewGormServiceRepository(db)
	sessionRepo := persistence.NewGormSessionRepository(db)
	stateRepo := persistence.NewGormOnboardingStateRepository(db)
	objects := storage.NewStubObjectStorage()

	leads := NewLeadHandler(
		leadapp.NewLeadService(leadRepo, statusRepo, nil, leadapp.ServiceConfig{}),
		leadapp.NewLeadStatusService(statusRepo),
	)
	pricing := NewPricingHandler(
		pricingapp.NewServiceCatalogService(serviceRepo),
		pricingapp.NewQuoteService(serviceRepo, nil, nil),
	)
	calendar := NewCalendarHandler(calendarapp.NewScheduleService(sessionRepo, leadRepo))
	gallery := NewGalleryHandler(galleryapp.NewDownloadService(objects, 0, nil))
	onboarding := NewOnboardingHandler(onboardingapp.NewOnboardingService(stateRepo, 3, nil))

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.StudioContext(middleware.StudioConfig{}))
	api := engine.Group("/api/v1")

	api.POST("/leads", leads.Create)
	api.GET("/leads", leads.List)
	api.GET("/leads/stats/summary", leads.Summary)
	api.GET("/leads/initials", leads.Initials)
	api.GET("/leads/:id", leads.GetByID)
	api.PUT("/leads/:id", leads.Update)
	api.PUT("/leads/:id/status", leads.ChangeStatus)
	api.DELETE("/leads/:id", leads.Delete)
	api.GET("/lead-statuses", leads.ListStatuses)
	api.POST("/lead-statuses", leads.CreateStatus)
	api.POST("/lead-statuses/seed", leads.SeedStatuses)

	api.POST("/services", pricing.CreateService)
	api.GET("/services", pricing.ListServices)
	api.GET("/services/:id", pricing.GetService)
	api.PUT("/services/:id", pricing.UpdateService)
	api.POST("/services/:id/deactivate", pricing.DeactivateService)
	api.GET("/services/:id/totals", pricing.ServiceTotals)
	api.POST("/pricing/totals", pricing.Totals)
	api.POST("/quotes/calculate", pricing.CalculateQuote)
	api.POST("/quotes/pdf", pricing.RenderQuotePDF)

	api.POST("/sessions", calendar.CreateSession)
	api.GET("/sessions", calendar.Week)
	api.GET("/sessions/:id", calendar.GetSession)
	api.POST("/sessions/:id/complete", calendar.CompleteSession)
	api.POST("/sessions/:id/cancel", calendar.CancelSession)
	api.GET("/calendar/clamp", calendar.Clamp)

	api.POST("/galleries/:id/download-url", gallery.DownloadURL)
	api.POST("/galleries/:id/files", gallery.Upload)
	api.DELETE("/galleries/:id/files", gallery.DeleteFile)
	api.GET("/files/sanitize", gallery.Sanitize)

	api.GET("/onboarding", onboarding.Get)
	api.POST("/onboarding/:action", func(c *gin.Context) {
		switch c.Param("action") {
		case "modal":
			onboarding.ShowModal(c)
		case "start":
			onboarding.Start(c)
		case "advance":
			onboarding.Advance(c)
		case "complete":
			onboarding.Complete(c)
		case "skip":
			onboarding.Skip(c)
		case "resume":
			onboarding.Resume(c)
		default:
			c.Status(http.StatusNotFound)
		}
	})

	return &testEnv{engine: engine, tenantID: uuid.New(), userID: uuid.New(), storage: objects}
}

// do sends body (marshalled to JSON unless it is an io.Reader) as the env's studio and user
func (e *testEnv) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantIDHeader, e.tenantID.String())
	req.Header.Set(middleware.UserIDHeader, e.userID.String())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// data decodes the data field of a successful response into out
func data(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode returns the error code of a failed response
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
