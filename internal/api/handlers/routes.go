package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Project    *ProjectHandler
	Template   *TemplateHandler
	Generation *GenerationHandler
	Version    *VersionHandler
	Export     *ExportHandler
	Research   *ResearchHandler
}

// Register mounts every content route on r, which is expected to sit behind auth.
func (hs *Handlers) Register(r fiber.Router) {
	r.Post("/projects", hs.Project.CreateProject)
	r.Get("/projects/:id", hs.Project.GetProject)
	r.Get("/projects/:id/calendar", hs.Project.ListCalendar)
	r.Post("/projects/:id/calendar", hs.Project.AddCalendarItems)

	r.Post("/projects/:id/research", hs.Research.StartResearch)
	r.Get("/projects/:id/research", hs.Research.LatestResearch)

	r.Get("/templates", hs.Template.ListTemplates)
	r.Get("/projects/:id/templates", hs.Template.AppliedTemplates)
	r.Post("/projects/:id/templates/:tid", hs.Template.ApplyTemplate)

	r.Get("/projects/:id/export.csv", hs.Export.ExportCSV)
	r.Get("/projects/:id/export.html", hs.Export.ExportPrintable)
	r.Post("/projects/:id/exports", hs.Export.PublishExport)

	r.Post("/items/:id/generate", hs.Generation.Generate)
	r.Post("/items/:id/regenerate", hs.Generation.Regenerate)
	r.Post("/items/:id/hashtags", hs.Generation.GenerateHashtags)
	r.Get("/items/:id/hashtags", hs.Generation.GetHashtags)
	r.Post("/items/:id/repurpose", hs.Generation.Repurpose)
	r.Get("/items/:id/status", hs.Generation.Status)

	r.Get("/items/:id/versions", hs.Version.ListVersions)
	r.Get("/items/:id/versions/current", hs.Version.CurrentVersion)
	r.Get("/items/:id/versions/:vid", hs.Version.SelectVersion)
	r.Get("/items/:id/versions/:vid/preview", hs.Version.PreviewVersion)
}
