package rest

import "net/http"

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Pantry   *PantryHandler
	Assembly *AssemblyHandler
	Recipe   *RecipeHandler
}

// NewRouter registers every endpoint on a ServeMux. Partner routes carry the
// partner id in the path; it is copied into the request context.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /partners/{partnerID}/pantries", withPartner(h.Pantry.Create))
	mux.HandleFunc("POST /partners/{partnerID}/pantries/sync", withPartner(h.Pantry.Sync))
	mux.HandleFunc("GET /partners/{partnerID}/pantries/{pantryID}", withPartner(h.Pantry.Get))
	mux.HandleFunc("DELETE /partners/{partnerID}/pantries/{pantryID}", withPartner(h.Pantry.Delete))
	mux.HandleFunc("GET /partners/{partnerID}/pantry-diff", withPartner(h.Pantry.Compare))

	mux.HandleFunc("POST /partners/{partnerID}/assemblies", withPartner(h.Assembly.Add))
	mux.HandleFunc("GET /partners/{partnerID}/assemblies/mappings", withPartner(h.Assembly.Mappings))
	mux.HandleFunc("DELETE /partners/{partnerID}/assemblies/{assemblyID}", withPartner(h.Assembly.Delete))

	mux.HandleFunc("POST /partners/{partnerID}/recipes/sync", withPartner(h.Recipe.Sync))
	mux.HandleFunc("GET /partners/{partnerID}/recipes", withPartner(h.Recipe.List))

	return mux
}
