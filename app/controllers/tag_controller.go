package controllers

import (
	"html/template"
	"io/fs"
	"net/http"

	"blogly/app/models"
	"blogly/app/services"
	"blogly/app/views"
)

// TagController handles HTTP requests for tags
type TagController struct {
	tagService *services.TagService
	templates  map[string]*template.Template
}

// NewTagController creates a new TagController rendering from fsys
func NewTagController(tagService *services.TagService, fsys fs.FS) *TagController {
	return &TagController{
		tagService: tagService,
		templates: map[string]*template.Template{
			"list": views.Page(fsys, "tags/list.html"),
			"new":  views.Page(fsys, "tags/new.html"),
			"show": views.Page(fsys, "tags/show.html"),
		},
	}
}

// Index lists every tag by name
func (tc *TagController) Index(w http.ResponseWriter, r *http.Request) {
	tags, err := tc.tagService.ListTags(r.Context())
	if err != nil {
		sendLookupError(w, r, "Tags", err)
		return
	}
	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"tags": tags})
		return
	}
	render(w, r, tc.templates["list"], struct{ Tags []*models.Tag }{tags})
}

// Show displays a tag and the posts carrying it
func (tc *TagController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid tag ID", http.StatusBadRequest)
		return
	}
	detail, err := tc.tagService.GetTagDetail(r.Context(), id)
	if err != nil {
		sendLookupError(w, r, "Tag", err)
		return
	}
	respond(w, r, tc.templates["show"], detail)
}

// New displays the add-tag form
func (tc *TagController) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, tc.templates["new"], nil)
}

// Create adds a tag when the add button was pressed. Every outcome returns
// to the tag list.
func (tc *TagController) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	if !hasField(r, addButton) {
		redirect(w, r, "/tags")
		return
	}
	err := tc.tagService.CreateTag(r.Context(), &models.Tag{Name: r.PostForm.Get("name")})
	finish(w, r, err, "Tag", "/tags", "/tags")
}
