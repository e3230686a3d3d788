// Package view holds the server-rendered HTML pages.
package view

import (
	"embed"
	"html/template"
	"strconv"
)

// Page names as registered with gin's HTML renderer.
const (
	Login         = "login.html"
	Signup        = "signup.html"
	Dashboard     = "dashboard.html"
	AddMedicine   = "add_medicine.html"
	EditMedicine  = "edit_medicine.html"
	NotFound      = "not_found.html"
	InternalError = "error.html"
)

//go:embed templates/*.html
var files embed.FS

func funcs() template.FuncMap {
	return template.FuncMap{
		"price": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	}
}

// Templates parses every embedded page into one set.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs()).ParseFS(files, "templates/*.html")
}

// MustTemplates is Templates for use at router construction.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
