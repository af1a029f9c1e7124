// Package handler serves the HTML shells the browser client runs in.
// The page guard runs before the protected pages, so they can assume a user.
package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"tend_backend/internal/feature/structuring/usecase"
	"tend_backend/internal/platform/sessionmw"
)

type field struct {
	Name      string
	Label     string
	Multiline bool
	MaxLength int
}

type homeData struct {
	Title      string
	Email      string // always empty; the landing page is public
	RedirectTo string
}

type toolData struct {
	Title     string
	Email     string
	Endpoint  string
	Fields    []field
	SendOwner bool
}

// PagesHandler renders the landing page and the three drafting pages.
type PagesHandler struct {
	home *template.Template
	tool *template.Template
}

// NewPagesHandler parses the embedded templates. A broken template is a build defect, so it panics.
func NewPagesHandler() *PagesHandler {
	parse := func(page string) *template.Template {
		return template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+page))
	}
	return &PagesHandler{
		home: parse("home.html"),
		tool: parse("tool.html"),
	}
}

// Home is public. It carries redirectTo through to the login form when it is a local path.
func (h *PagesHandler) Home(c *gin.Context) {
	h.render(c, h.home, homeData{Title: "Welcome", RedirectTo: localPath(c.Query("redirectTo"))})
}

// MapConnection renders the relationship drafting page.
func (h *PagesHandler) MapConnection(c *gin.Context) {
	h.renderTool(c, toolData{
		Title:    "Map a connection",
		Endpoint: "/mapConnection",
		Fields: []field{
			{Name: "text", Label: "Describe this person and your connection", Multiline: true, MaxLength: usecase.MaxConnectionText},
		},
	})
}

// CreateNorthStar renders the north star drafting page.
func (h *PagesHandler) CreateNorthStar(c *gin.Context) {
	h.renderTool(c, toolData{
		Title:    "Create your North Star",
		Endpoint: "/createNorthStar",
		Fields: []field{
			{Name: "visionText", Label: "Where do you want your relationships to be?", Multiline: true, MaxLength: usecase.MaxNorthStarText},
			{Name: "currentText", Label: "Where are they now?", Multiline: true, MaxLength: usecase.MaxNorthStarText},
		},
	})
}

// DesignExperiment renders the experiment drafting page. The request includes the
// caller's email so the draft can use their north star and relationships.
func (h *PagesHandler) DesignExperiment(c *gin.Context) {
	h.renderTool(c, toolData{
		Title:    "Design an experiment",
		Endpoint: "/designExperiment",
		Fields: []field{
			{Name: "text", Label: "What challenge do you want to work on?", Multiline: true, MaxLength: usecase.MaxExperimentText},
		},
		SendOwner: true,
	})
}

func (h *PagesHandler) renderTool(c *gin.Context, data toolData) {
	if user, ok := sessionmw.UserFrom(c); ok {
		data.Email = user.Email
	}
	h.render(c, h.tool, data)
}

func (h *PagesHandler) render(c *gin.Context, t *template.Template, data any) {
	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{Template: t, Name: "base", Data: data})
}

// localPath keeps only same-site absolute paths so redirectTo cannot send users elsewhere.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	return p
}
