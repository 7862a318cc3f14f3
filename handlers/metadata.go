package handlers

import (
	"net/http"

	"dishfinder/directory"
)

// Counties lists the 47 counties offered in the county picker, independent of
// which counties the directory actually contains.
var Counties = []string{
	"Baringo", "Bomet", "Bungoma", "Busia", "Elgeyo-Marakwet", "Embu", "Garissa",
	"Homa Bay", "Isiolo", "Kajiado", "Kakamega", "Kericho", "Kiambu", "Kilifi",
	"Kirinyaga", "Kisii", "Kisumu", "Kitui", "Kwale", "Laikipia", "Lamu", "Machakos",
	"Makueni", "Mandera", "Marsabit", "Meru", "Migori", "Mombasa", "Murang'a",
	"Nairobi", "Nakuru", "Nandi", "Narok", "Nyamira", "Nyandarua", "Nyeri",
	"Samburu", "Siaya", "Taita Taveta", "Tana River", "Tharaka Nithi", "Trans-Nzoia",
	"Turkana", "Uasin Gishu", "Vihiga", "Wajir", "West Pokot",
}

// Cuisines lists the values accepted by the cuisine filter.
var Cuisines = []string{
	"African", "Cafe", "Chinese", "Continental", "Farm-to-table", "Healthy", "International",
	"Italian", "Japanese", "Kenyan", "Korean", "Safari", "Seafood", "Steakhouse", "Swahili",
}

// CountiesHandler returns the county picker options.
func CountiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Counties)
	}
}

// CuisinesHandler returns the cuisine filter options.
func CuisinesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Cuisines)
	}
}

// HealthHandler reports whether the directory has loaded and how much of it
// there is.
func HealthHandler(idx *directory.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := idx.Snapshot()
		status := "ok"
		if idx.LoadFailed() {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":      status,
			"loaded":      idx.Loaded(),
			"load_failed": idx.LoadFailed(),
			"counties":    len(dir),
			"restaurants": dir.Len(),
		})
	}
}
