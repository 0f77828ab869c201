// Package routes wires controllers and middleware into the HTTP route table.
package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogly/app/controllers"
	"blogly/app/middleware"
	"blogly/app/repositories"
	"blogly/app/services"
	"blogly/app/views"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Setup builds the router for every page and API endpoint over store
func Setup(store repositories.Store, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer)

	userService := services.NewUserService(store)
	postService := services.NewPostService(store)
	tagService := services.NewTagService(store)

	userController := controllers.NewUserController(userService, views.FS)
	postController := controllers.NewPostController(postService, userService, views.FS)
	tagController := controllers.NewTagController(tagService, views.FS)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))

	router.Handle("/", http.RedirectHandler("/users", http.StatusFound)).Methods("GET")

	// Users
	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("", userController.Index).Methods("GET")
	users.HandleFunc("/new", userController.New).Methods("GET")
	users.HandleFunc("/new", userController.Create).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}", userController.Show).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}/edit", userController.Edit).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}/edit", userController.Update).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}/delete", userController.Delete).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}/posts/new", postController.New).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}/posts/new", postController.Create).Methods("POST")

	// Posts
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Dispatch).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/edit", postController.Edit).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/edit", postController.Update).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/delete", postController.Delete).Methods("GET", "POST")

	// Tags
	tags := router.PathPrefix("/tags").Subrouter()
	tags.HandleFunc("", tagController.Index).Methods("GET")
	tags.HandleFunc("/new", tagController.New).Methods("GET")
	tags.HandleFunc("/new", tagController.Create).Methods("POST")
	tags.HandleFunc("/{id:[0-9]+}", tagController.Show).Methods("GET")

	// Read-only API with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/users", userController.Index).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", userController.Show).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	api.HandleFunc("/tags", tagController.Index).Methods("GET")
	api.HandleFunc("/tags/{id:[0-9]+}", tagController.Show).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(notFound)

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
		return
	}
	http.NotFound(w, r)
}
