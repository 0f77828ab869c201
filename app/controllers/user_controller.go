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

// UserController handles HTTP requests for users
type UserController struct {
	userService *services.UserService
	templates   map[string]*template.Template
}

// NewUserController creates a new UserController rendering from fsys
func NewUserController(userService *services.UserService, fsys fs.FS) *UserController {
	return &UserController{
		userService: userService,
		templates: map[string]*template.Template{
			"list": views.Page(fsys, "users/list.html"),
			"new":  views.Page(fsys, "users/new.html"),
			"show": views.Page(fsys, "users/show.html"),
			"edit": views.Page(fsys, "users/edit.html"),
		},
	}
}

// Index lists every user
func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := uc.userService.ListUsers(r.Context())
	if err != nil {
		sendLookupError(w, r, "Users", err)
		return
	}
	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"users": users})
		return
	}
	render(w, r, uc.templates["list"], struct{ Users []*models.User }{users})
}

// New displays the add-user form
func (uc *UserController) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, uc.templates["new"], nil)
}

// Create adds a user from the submitted form and returns to the user list
func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	user := userFromForm(r)
	err := uc.userService.CreateUser(r.Context(), user)
	finish(w, r, err, "User", "/users", "/users")
}

// Show displays a user with their posts
func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	detail, err := uc.userService.GetUserDetail(r.Context(), id)
	if err != nil {
		sendLookupError(w, r, "User", err)
		return
	}
	respond(w, r, uc.templates["show"], detail)
}

// Edit displays the edit form for a user
func (uc *UserController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	user, err := uc.userService.GetUser(r.Context(), id)
	if err != nil {
		sendLookupError(w, r, "User", err)
		return
	}
	respond(w, r, uc.templates["edit"], user)
}

// Update applies an edit when the form was saved; cancel leaves the user
// untouched.
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if _, err := uc.userService.GetUser(r.Context(), id); err != nil {
		sendLookupError(w, r, "User", err)
		return
	}
	if !parseForm(w, r) {
		return
	}
	if !hasField(r, saveButton) {
		redirect(w, r, "/users")
		return
	}

	user := userFromForm(r)
	user.ID = id
	err = uc.userService.UpdateUser(r.Context(), user)
	finish(w, r, err, "User", "/users", "/users")
}

// Delete removes a user together with their posts
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, r, "Invalid user ID", http.StatusBadRequest)
		return
	}
	err = uc.userService.DeleteUser(r.Context(), id)
	finish(w, r, err, "User", "/users", "/users")
}

func userFromForm(r *http.Request) *models.User {
	return &models.User{
		FirstName: r.PostForm.Get("first"),
		LastName:  r.PostForm.Get("last"),
		ImageURL:  r.PostForm.Get("URL"),
	}
}

func userURL(id int) string {
	return "/users/" + strconv.Itoa(id)
}
