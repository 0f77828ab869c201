package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"blogly/app/repositories"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Submit actions. A form selects its branch by which of these fields it
// sends; their values are ignored.
const (
	saveButton   = "save_button"
	editButton   = "edit_button"
	deleteButton = "delete_button"
	cancelButton = "cancel_button"
	addButton    = "add_button"
)

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// hasField reports whether the submitted form carries the named field.
// ParseForm must have been called.
func hasField(r *http.Request, name string) bool {
	_, ok := r.PostForm[name]
	return ok
}

// checkedTags collects the ids of every tag checkbox in the submission.
// Checkboxes are named by tag id, so any numeric field name counts.
func checkedTags(r *http.Request) map[int]bool {
	ids := make(map[int]bool)
	for name := range r.PostForm {
		if id, err := strconv.Atoi(name); err == nil && id > 0 {
			ids[id] = true
		}
	}
	return ids
}

func render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", tmpl.Name()).Msg("render failed")
		sendError(w, r, "Template error", http.StatusInternalServerError)
	}
}

// respond writes data as JSON for API clients and renders tmpl otherwise.
func respond(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data interface{}) {
	if wantsJSON(r) {
		sendJSON(w, data)
		return
	}
	render(w, r, tmpl, data)
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// sendLookupError answers a failed read: 404 for a missing record, 500 for
// anything else.
func sendLookupError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, what+" not found", http.StatusNotFound)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("lookup failed")
	sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// finish ends a mutating submission. Success goes to target. A missing
// record is a 404. Any other failure is logged and sent to fallback with no
// message for the user.
func finish(w http.ResponseWriter, r *http.Request, err error, what, target, fallback string) {
	switch {
	case err == nil:
		redirect(w, r, target)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, r, what+" not found", http.StatusNotFound)
	default:
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("submission failed")
		redirect(w, r, fallback)
	}
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
