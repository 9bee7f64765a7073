package api

import (
	"fmt"
	"net/http"
)

// Route is a method and path pair for one backend operation
type Route struct {
	Method string
	Path   string
}

// Routes maps catalog operations to backend endpoints
type Routes struct {
	Name string

	ListBooks     Route
	FeaturedBooks Route
	GetBook       func(id int) Route
	CreateBook    Route
	UpdateBook    func(id int) Route
	DeleteBook    func(id int) Route

	ListUsers  Route
	GetUser    func(id int) Route
	CreateUser Route
	UpdateUser func(id int) Route
	DeleteUser func(id int) Route
}

func pathf(method, format string) func(int) Route {
	return func(id int) Route {
		return Route{Method: method, Path: fmt.Sprintf(format, id)}
	}
}

// RESTRoutes is the resource-style contract: /books, /books/{id}, /users, /users/{id}
func RESTRoutes() Routes {
	return Routes{
		Name:          "rest",
		ListBooks:     Route{http.MethodGet, "/books"},
		FeaturedBooks: Route{http.MethodGet, "/books"},
		GetBook:       pathf(http.MethodGet, "/books/%d"),
		CreateBook:    Route{http.MethodPost, "/books"},
		UpdateBook:    pathf(http.MethodPut, "/books/%d"),
		DeleteBook:    pathf(http.MethodDelete, "/books/%d"),

		ListUsers:  Route{http.MethodGet, "/users"},
		GetUser:    pathf(http.MethodGet, "/users/%d"),
		CreateUser: Route{http.MethodPost, "/users"},
		UpdateUser: pathf(http.MethodPut, "/users/%d"),
		DeleteUser: pathf(http.MethodDelete, "/users/%d"),
	}
}

// LegacyRoutes matches the older backend with verb-named endpoints
func LegacyRoutes() Routes {
	return Routes{
		Name:          "legacy",
		ListBooks:     Route{http.MethodGet, "/books"},
		FeaturedBooks: Route{http.MethodGet, "/books/all_books"},
		GetBook:       pathf(http.MethodGet, "/books/%d"),
		CreateBook:    Route{http.MethodPost, "/books/create_book"},
		UpdateBook:    pathf(http.MethodPut, "/books/update/%d"),
		DeleteBook:    pathf(http.MethodDelete, "/books/delete/%d"),

		ListUsers:  Route{http.MethodGet, "/users/all_users"},
		GetUser:    pathf(http.MethodGet, "/users/id/%d"),
		CreateUser: Route{http.MethodPost, "/users/create_user"},
		UpdateUser: pathf(http.MethodPut, "/users/update/%d"),
		DeleteUser: pathf(http.MethodDelete, "/users/delete/%d"),
	}
}

// RoutesByName resolves a configured route style
func RoutesByName(name string) (Routes, error) {
	switch name {
	case "", "rest":
		return RESTRoutes(), nil
	case "legacy":
		return LegacyRoutes(), nil
	default:
		return Routes{}, fmt.Errorf("unknown route style %q", name)
	}
}
