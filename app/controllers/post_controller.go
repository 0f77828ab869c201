package controllers

import (
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"blogly/app/models"
	"blogly/app/services"
	"blogly/app/views"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	userService *services.UserService
	templates   map[string]*template.Template
}

// NewPostController creates a new PostController rendering from fsys
func NewPostController(postService *services.PostService, userService *services.UserService, fsys fs.FS) *PostController {
	return &PostController{
		postService: postService,
		userService: userService,
		templates: map[string]*template.Template{
			"new":  views.Page(fsys, "posts/new.html"),
			"show": views.Page(fsys, "posts/show.html"),
			"edit": views.Page(fsys, "posts/edit.html"),
		},
	}
}

// New displays the add-post form for a user, with a checkbox per tag
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	form, err := pc.postService.NewPostForm(r.Context(), userID)
	if err != nil {
		sendLookupError(w, r, "User", err)
		return
	}
	respond(w, r, pc.templates["new"], form)
}

// Create adds a post for the user in the path and tags it with every
// checked tag
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if _, err := pc.userService.GetUser(r.Context(), userID); err != nil {
		sendLookupError(w, r, "User", err)
		return
	}
	if !parseForm(w, r) {
		return
	}
	if !hasField(r, saveButton) {
		redirect(w, r, userURL(userID))
		return
	}

	post := &models.Post{
		Title:   r.PostForm.Get("title"),
		Content: r.PostForm.Get("content"),
		UserID:  userID,
	}
	err = pc.postService.CreatePost(r.Context(), post, checkedTags(r))
	finish(w, r, err, "User", userURL(userID), "/users")
}

// Show displays a post with its author and tags
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	detail, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendLookupError(w, r, "Post", err)
		return
	}
	respond(w, r, pc.templates["show"], detail)
}

// Dispatch routes the buttons on the post page: cancel, edit or delete.
func (pc *PostController) Dispatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if _, err := pc.postService.GetPost(r.Context(), id); err != nil {
		sendLookupError(w, r, "Post", err)
		return
	}
	if !parseForm(w, r) {
		return
	}

	switch {
	case hasField(r, cancelButton):
		redirect(w, r, "/users")
	case hasField(r, editButton):
		redirect(w, r, postURL(id)+"/edit")
	case hasField(r, deleteButton):
		redirect(w, r, postURL(id)+"/delete")
	default:
		redirect(w, r, postURL(id))
	}
}

// Edit displays the edit form with the tags split into checked and unchecked
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	form, err := pc.postService.EditPostForm(r.Context(), id)
	if err != nil {
		sendLookupError(w, r, "Post", err)
		return
	}
	respond(w, r, pc.templates["edit"], form)
}

// Update replaces title and content and reconciles the post's tags with the
// checked boxes
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if _, err := pc.postService.GetPost(r.Context(), id); err != nil {
		sendLookupError(w, r, "Post", err)
		return
	}
	if !parseForm(w, r) {
		return
	}
	if !hasField(r, editButton) {
		redirect(w, r, postURL(id))
		return
	}

	post := &models.Post{
		ID:      id,
		Title:   r.PostForm.Get("title"),
		Content: r.PostForm.Get("content"),
	}
	err = pc.postService.UpdatePost(r.Context(), post, checkedTags(r))
	finish(w, r, err, "Post", postURL(id), "/users")
}

// Delete removes a post and its tag associations
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	err = pc.postService.DeletePost(r.Context(), id)
	finish(w, r, err, "Post", "/users", "/users")
}

func postURL(id int) string {
	return "/posts/" + strconv.Itoa(id)
}
