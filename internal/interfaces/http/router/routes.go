package router

import (
	"net/http"

	"github.com/lumiso/backend/internal/interfaces/http/handler"
)

// Handlers are the studio API handlers mounted by StudioGroups
type Handlers struct {
	Leads      *handler.LeadHandler
	Pricing    *handler.PricingHandler
	Calendar   *handler.CalendarHandler
	Gallery    *handler.GalleryHandler
	Onboarding *handler.OnboardingHandler
	System     *handler.SystemHandler
}

// StudioGroups builds the route groups of the studio API
func StudioGroups(h Handlers) []*DomainGroup {
	leads := NewDomainGroup("leads", "/leads").
		Handle(http.MethodPost, "", "Create a lead", h.Leads.Create).
		Handle(http.MethodGet, "", "List leads", h.Leads.List).
		Handle(http.MethodGet, "/stats/summary", "Pipeline summary", h.Leads.Summary).
		Handle(http.MethodGet, "/initials", "Initials for a display name", h.Leads.Initials).
		Handle(http.MethodGet, "/:id", "Get a lead", h.Leads.GetByID).
		Handle(http.MethodPut, "/:id", "Update a lead", h.Leads.Update).
		Handle(http.MethodPut, "/:id/status", "Move a lead to another status", h.Leads.ChangeStatus).
		Handle(http.MethodDelete, "/:id", "Delete a lead", h.Leads.Delete)

	statuses := NewDomainGroup("lead-statuses", "/lead-statuses").
		Handle(http.MethodGet, "", "List pipeline statuses", h.Leads.ListStatuses).
		Handle(http.MethodPost, "", "Create a pipeline status", h.Leads.CreateStatus).
		Handle(http.MethodPost, "/seed", "Seed the default pipeline", h.Leads.SeedStatuses)

	services := NewDomainGroup("services", "/services").
		Handle(http.MethodPost, "", "Add a catalogue service", h.Pricing.CreateService).
		Handle(http.MethodGet, "", "List catalogue services", h.Pricing.ListServices).
		Handle(http.MethodGet, "/:id", "Get a catalogue service", h.Pricing.GetService).
		Handle(http.MethodPut, "/:id", "Update a catalogue service", h.Pricing.UpdateService).
		Handle(http.MethodPost, "/:id/deactivate", "Hide a service from new quotes", h.Pricing.DeactivateService).
		Handle(http.MethodGet, "/:id/totals", "VAT totals for a quantity", h.Pricing.ServiceTotals)

	pricing := NewDomainGroup("pricing", "/pricing").
		Handle(http.MethodPost, "/totals", "Raw VAT calculator", h.Pricing.Totals)

	quotes := NewDomainGroup("quotes", "/quotes").
		Handle(http.MethodPost, "/calculate", "Price a quote", h.Pricing.CalculateQuote).
		Handle(http.MethodPost, "/pdf", "Render a quote PDF", h.Pricing.RenderQuotePDF)

	sessions := NewDomainGroup("sessions", "/sessions").
		Handle(http.MethodPost, "", "Schedule a session", h.Calendar.CreateSession).
		Handle(http.MethodGet, "", "Week preview", h.Calendar.Week).
		Handle(http.MethodGet, "/:id", "Get a session", h.Calendar.GetSession).
		Handle(http.MethodPost, "/:id/complete", "Mark a session as shot", h.Calendar.CompleteSession).
		Handle(http.MethodPost, "/:id/cancel", "Cancel a session", h.Calendar.CancelSession)

	calendar := NewDomainGroup("calendar", "/calendar").
		Handle(http.MethodGet, "/clamp", "Normalise a viewing window", h.Calendar.Clamp)

	galleries := NewDomainGroup("galleries", "/galleries/:id").
		Handle(http.MethodPost, "/download-url", "Presigned download link", h.Gallery.DownloadURL).
		Handle(http.MethodPost, "/files", "Upload a client selection", h.Gallery.Upload).
		Handle(http.MethodDelete, "/files", "Delete a gallery file", h.Gallery.DeleteFile)

	files := NewDomainGroup("files", "/files").
		Handle(http.MethodGet, "/sanitize", "Download-safe file name", h.Gallery.Sanitize)

	onboarding := NewDomainGroup("onboarding", "/onboarding").
		Handle(http.MethodGet, "", "Current user's onboarding", h.Onboarding.Get).
		Handle(http.MethodPost, "/modal", "Record the welcome modal", h.Onboarding.ShowModal).
		Handle(http.MethodPost, "/start", "Start onboarding", h.Onboarding.Start).
		Handle(http.MethodPost, "/advance", "Next onboarding step", h.Onboarding.Advance).
		Handle(http.MethodPost, "/complete", "Finish onboarding", h.Onboarding.Complete).
		Handle(http.MethodPost, "/skip", "Skip onboarding", h.Onboarding.Skip).
		Handle(http.MethodPost, "/resume", "Resume skipped onboarding", h.Onboarding.Resume)

	system := NewDomainGroup("system", "/system").
		Handle(http.MethodGet, "/info", "Build and uptime", h.System.GetSystemInfo).
		Handle(http.MethodGet, "/ping", "Liveness ping", h.System.Ping)

	return []*DomainGroup{leads, statuses, services, pricing, quotes, sessions, calendar, galleries, files, onboarding, system}
}

// Registrars adapts groups for Router.Register
func Registrars(groups []*DomainGroup) []RouteRegistrar {
	registrars := make([]RouteRegistrar, len(groups))
	for i, g := range groups {
		registrars[i] = g
	}
	return registrars
}
