package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/rlimports/autovitrine/internal/dealer"
	"github.com/rlimports/autovitrine/internal/gemini"
)

// NewRouter creates a chi router with all API routes mounted. Admin routes
// live under /admin behind the shared-secret middleware; everything else is
// the public storefront surface. dataDir roots the uploaded vehicle photos.
func NewRouter(svc *dealer.Service, gen *gemini.Client, adminSecret, dataDir string) chi.Router {
	h := NewHandler(svc, gen, adminSecret)
	ih := NewImageHandler(dataDir)

	r := chi.NewRouter()

	// Public storefront.
	r.Get("/vehicles", h.ListVehicles)
	r.Get("/vehicles/{id}", h.GetVehicle)
	r.Post("/leads/financing", h.SubmitFinancingLead)
	r.Post("/leads/sell", h.SubmitSellLead)
	r.Get("/settings", h.GetSettings)
	r.Post("/login", h.Login)
	r.Get("/images/{filename}", ih.ServeFile)

	// Admin area.
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(AdminAuth(adminSecret))
		ar.Get("/vehicles", h.AdminListVehicles)
		ar.Post("/vehicles", h.CreateVehicle)
		ar.Put("/vehicles/{id}", h.UpdateVehicle)
		ar.Delete("/vehicles/{id}", h.DeleteVehicle)
		ar.Get("/leads", h.ListLeads)
		ar.Post("/leads/{id}/contacted", h.MarkLeadContacted)
		ar.Get("/settings", h.GetSettings)
		ar.Put("/settings", h.SaveSettings)
		ar.Get("/stats", h.Stats)
		ar.Post("/generate/description", h.GenerateDescription)
		ar.Post("/generate/price", h.SuggestPrice)
		ar.Post("/images", ih.Upload)
	})

	return r
}
