package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/viewmodel"

	"github.com/sirupsen/logrus"
)

const layoutTemplate = "layout.html"

type PageHandler struct {
	templates *template.Template
	resolver  *composition.Resolver
	log       *logrus.Logger
}

// PageData is what every page template renders from.
type PageData struct {
	Title     string
	Route     string
	Component string
	DataURL   string
	User      *models.User
	Role      string
	Initials  string
	Menu      []composition.MenuSection
	Content   template.HTML
}

func NewPageHandler(fsys fs.FS, resolver *composition.Resolver, log *logrus.Logger) (*PageHandler, error) {
	// Parse all templates from embedded filesystem
	templates, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: templates,
		resolver:  resolver,
		log:       log,
	}, nil
}

// Page serves one entry of composition.Routes. Routes that name a resolver
// entry mount the role's component; the rest mount a fixed view.
func (h *PageHandler) Page(route composition.RouteData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac := middleware.GetAuth(r)
		data := PageData{
			Title:   route.Title,
			Route:   route.Path,
			DataURL: route.DataURL,
			User:    ac.User,
			Role:    ac.Role(),
			Menu:    composition.BuildMenu(ac.Role()),
		}
		if ac.User != nil {
			data.Initials = viewmodel.Initials(ac.User.FirstName, ac.User.LastName)
		}

		view := route.Template
		if route.Resolve != "" {
			factory, err := h.resolver.Resolve(route.Resolve, ac.Role())
			if err != nil {
				h.notFound(w, r, err)
				return
			}
			c := factory()
			view, data.Title, data.Component, data.DataURL = c.Template, c.Title, c.Name, c.DataURL
		}

		if route.Public {
			h.render(w, view, data)
			return
		}

		var buf bytes.Buffer
		if err := h.templates.ExecuteTemplate(&buf, view, data); err != nil {
			h.log.WithError(err).WithField("template", view).Error("failed to render view")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data.Content = template.HTML(buf.String())
		h.render(w, layoutTemplate, data)
	}
}

// Index lands on the resolved dashboard.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// NotFound sends unknown paths back to the root.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if !wantsPage(r) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, composition.ErrNoMapping) {
		h.log.WithField("path", r.URL.Path).Warn("no component for route")
	}
	http.Redirect(w, r, auth.DashboardPath(middleware.GetAuth(r).Role()), http.StatusFound)
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data PageData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.WithError(err).WithField("template", name).Error("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func wantsPage(r *http.Request) bool {
	return r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api/")
}
