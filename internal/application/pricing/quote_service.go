package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/gallery"
	"github.com/lumiso/backend/internal/domain/pricing"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/printing"
	"github.com/lumiso/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuoteMetrics records quote measurements
type QuoteMetrics interface {
	QuoteRendered(ctx context.Context, tenantID uuid.UUID)
}

type nopQuoteMetrics struct{}

func (nopQuoteMetrics) QuoteRendered(context.Context, uuid.UUID) {}

// QuoteServiceOption configures a QuoteService
type QuoteServiceOption func(*QuoteService)

// WithQuoteMetrics sets the metrics recorder
func WithQuoteMetrics(m QuoteMetrics) QuoteServiceOption {
	return func(s *QuoteService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithQuoteLogger sets the logger
func WithQuoteLogger(logger *zap.Logger) QuoteServiceOption {
	return func(s *QuoteService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStudioName sets the heading printed on quotes
func WithStudioName(name string) QuoteServiceOption {
	return func(s *QuoteService) {
		s.studioName = name
	}
}

// WithQuoteClock overrides the issue date source
func WithQuoteClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteService) {
		s.now = now
	}
}

// QuoteService prices quotes and renders them to PDF
type QuoteService struct {
	services   pricing.ServiceRepository
	engine     *printing.TemplateEngine
	renderer   printing.PDFRenderer
	metrics    QuoteMetrics
	logger     *zap.Logger
	studioName string
	now        func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	services pricing.ServiceRepository,
	engine *printing.TemplateEngine,
	renderer printing.PDFRenderer,
	opts ...QuoteServiceOption,
) *QuoteService {
	if engine == nil {
		engine = printing.NewTemplateEngine()
	}
	if renderer == nil {
		renderer = printing.DisabledRenderer{}
	}
	s := &QuoteService{
		services: services,
		engine:   engine,
		renderer: renderer,
		metrics:  nopQuoteMetrics{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate prices a quote. Catalogue lines must reference active services
// of the studio.
func (s *QuoteService) Calculate(ctx context.Context, tenantID uuid.UUID, req CalculateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.buildQuote(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// RenderPDF prices a quote and renders it. Renderer timeouts and repository
// outages come back retryable; invalid quotes and template errors are fatal.
func (s *QuoteService) RenderPDF(ctx context.Context, tenantID uuid.UUID, req RenderQuoteRequest) (result shared.Result[*QuotePDF]) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "render_pdf", attribute.String("tenant_id", tenantID.String()))
	defer func() { telemetry.EndSpan(span, result.Err()) }()

	quote, err := s.buildQuote(ctx, tenantID, req.CalculateQuoteRequest)
	if err != nil {
		return shared.Err[*QuotePDF](err)
	}

	html, err := s.engine.RenderQuote(ctx, s.document(quote, req.CalculateQuoteRequest))
	if err != nil {
		return shared.Fatal[*QuotePDF](fmt.Errorf("render quote template: %w", err))
	}

	paper := printing.PaperSize(strings.ToUpper(req.PaperSize))
	if paper == "" {
		paper = printing.PaperSizeA4
	}
	fileName := gallery.DownloadFileName(quote.ClientName+"_quote", "pdf")

	rendered, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:      html,
		PaperSize: paper,
		Landscape: req.Landscape,
		Margins:   printing.DefaultMargins(),
		Title:     fileName,
	})
	if err != nil {
		failed := shared.Err[*QuotePDF](fmt.Errorf("render quote pdf: %w", err))
		s.logger.Warn("Quote PDF rendering failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Stringer("kind", failed.Kind()),
			zap.Error(err),
		)
		return failed
	}

	s.metrics.QuoteRendered(ctx, tenantID)
	return shared.Ok(&QuotePDF{
		Data:      rendered.PDFData,
		FileName:  fileName,
		PageCount: rendered.PageCount,
	})
}

func (s *QuoteService) buildQuote(ctx context.Context, tenantID uuid.UUID, req CalculateQuoteRequest) (*pricing.Quote, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote must contain at least one line")
	}

	catalogue, err := s.loadServices(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.QuoteLine, 0, len(req.Lines))
	for i, l := range req.Lines {
		quantity := l.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if l.ServiceID != nil {
			svc, ok := catalogue[*l.ServiceID]
			if !ok {
				return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Service on line %d not found", i+1))
			}
			if !svc.Active {
				return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Service on line %d is inactive", i+1))
			}
			lines = append(lines, pricing.LineFromService(svc, quantity))
			continue
		}
		if strings.TrimSpace(l.Name) == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Line %d needs a name or a service", i+1))
		}
		lines = append(lines, pricing.QuoteLine{
			Name:      strings.TrimSpace(l.Name),
			UnitPrice: l.UnitPrice,
			Quantity:  quantity,
			VatRate:   l.VatRate,
			VatMode:   pricing.ParseVatMode(l.VatMode),
		})
	}

	return pricing.NewQuote(strings.TrimSpace(req.ClientName), strings.ToUpper(req.Currency), lines)
}

func (s *QuoteService) loadServices(ctx context.Context, tenantID uuid.UUID, lines []QuoteLineRequest) (map[uuid.UUID]*pricing.Service, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if l.ServiceID == nil {
			continue
		}
		if _, dup := seen[*l.ServiceID]; dup {
			continue
		}
		seen[*l.ServiceID] = struct{}{}
		ids = append(ids, *l.ServiceID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	services, err := s.services.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*pricing.Service, len(services))
	for i := range services {
		byID[services[i].ID] = &services[i]
	}
	return byID, nil
}

func (s *QuoteService) document(q *pricing.Quote, req CalculateQuoteRequest) printing.QuoteDocument {
	issued := s.now()
	doc := printing.QuoteDocument{
		StudioName: s.studioName,
		ClientName: q.ClientName,
		Currency:   q.Currency,
		IssuedAt:   issued,
		Notes:      req.Notes,
		Lines:      make([]printing.QuoteDocumentLine, len(q.Lines)),
	}
	if req.ValidDays > 0 {
		doc.ValidUntil = issued.AddDate(0, 0, req.ValidDays)
	}
	for i, l := range q.Lines {
		rounded := l.Totals.Rounded(DisplayPlaces)
		doc.Lines[i] = printing.QuoteDocumentLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			VatRate:   l.VatRate,
			VatMode:   string(l.VatMode),
			Net:       rounded.Net,
			Vat:       rounded.Vat,
			Gross:     rounded.Gross,
		}
	}
	totals := q.RoundedTotals(DisplayPlaces)
	doc.Net, doc.Vat, doc.Gross = totals.Net, totals.Vat, totals.Gross
	return doc
}
