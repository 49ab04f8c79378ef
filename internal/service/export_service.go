package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ExportFormat string

const (
	ExportCSV       ExportFormat = "csv"
	ExportPrintable ExportFormat = "html"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportCSV, ExportPrintable:
		return ExportFormat(s), nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", ErrValidation, s)
}

func (f ExportFormat) ContentType() string {
	if f == ExportCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// Uploader is satisfied by *R2Service.
type Uploader interface {
	UploadToR2(ctx context.Context, key string, file []byte, contentType string) error
	PublicURL(key string) string
}

type Export struct {
	Format   ExportFormat
	Filename string
	Data     []byte
}

type ExportService interface {
	Render(ctx context.Context, projectID int64, format ExportFormat) (*Export, error)
	Publish(ctx context.Context, projectID int64, format ExportFormat) (string, error)
}

type exportService struct {
	cr repository.CalendarRepository
	up Uploader
}

func NewExportService(cr repository.CalendarRepository, up Uploader) ExportService {
	return &exportService{cr: cr, up: up}
}

func (s *exportService) Render(ctx context.Context, projectID int64, format ExportFormat) (*Export, error) {
	items, err := s.cr.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error getting calendar: %w", err)
	}

	var data string
	switch format {
	case ExportCSV:
		data = ToCSV(items)
	case ExportPrintable:
		data, err = ToPrintable(items)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrValidation, format)
	}

	return &Export{
		Format:   format,
		Filename: fmt.Sprintf("content-calendar-%d.%s", projectID, format),
		Data:     []byte(data),
	}, nil
}

// Publish uploads the rendered export and returns its public URL.
func (s *exportService) Publish(ctx context.Context, projectID int64, format ExportFormat) (string, error) {
	export, err := s.Render(ctx, projectID, format)
	if err != nil {
		return "", err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	key := fmt.Sprintf("exports/%d/%s-%s", projectID, id, export.Filename)
	if err := s.up.UploadToR2(ctx, key, export.Data, format.ContentType()); err != nil {
		return "", fmt.Errorf("error uploading export: %w", err)
	}
	return s.up.PublicURL(key), nil
}

const csvHeader = "Day, Date, Platform, Content Type, Topic"

// ToCSV writes one row per item in input order. The topic column is always
// quoted; other columns only when they hold a separator, quote or line break.
func ToCSV(items []*models.CalendarItem) string {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteString("\n")
	for i, item := range items {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(",")
		sb.WriteString(csvField(item.Date))
		sb.WriteString(",")
		sb.WriteString(csvField(string(item.Platform)))
		sb.WriteString(",")
		sb.WriteString(csvField(item.ContentType))
		sb.WriteString(",")
		sb.WriteString(quoteField(item.Topic))
		sb.WriteString("\n")
	}
	return sb.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quoteField(s)
	}
	return s
}

var platformStyles = map[models.Platform]string{
	models.PlatformTwitter:   "platform-twitter",
	models.PlatformLinkedIn:  "platform-linkedin",
	models.PlatformBlog:      "platform-blog",
	models.PlatformInstagram: "platform-instagram",
}

// platformStyle never fails: hand-entered platforms get the default style.
func platformStyle(p models.Platform) string {
	if style, ok := platformStyles[p]; ok {
		return style
	}
	return "platform-default"
}

func dateLabel(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, 2 Jan 2006")
}

var printableTmpl = template.Must(template.New("printable").Funcs(template.FuncMap{
	"platformStyle": platformStyle,
	"dateLabel":     dateLabel,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Content Calendar</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1f2937; }
h1 { font-size: 1.5rem; margin-bottom: 1.5rem; }
.item { border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px 16px; margin-bottom: 12px; page-break-inside: avoid; }
.date { font-size: 0.85rem; color: #6b7280; margin-bottom: 6px; }
.badge { display: inline-block; padding: 2px 10px; border-radius: 999px; font-size: 0.75rem; font-weight: 600; }
.type { display: inline-block; margin-left: 8px; font-size: 0.75rem; color: #6b7280; }
.topic { margin-top: 8px; font-weight: 500; }
.platform-twitter { background: #e0f2fe; color: #0369a1; }
.platform-linkedin { background: #dbeafe; color: #1d4ed8; }
.platform-blog { background: #dcfce7; color: #15803d; }
.platform-instagram { background: #fce7f3; color: #be185d; }
.platform-default { background: #f3f4f6; color: #374151; }
@media print { body { margin: 0.5in; } }
</style>
</head>
<body>
<h1>Content Calendar</h1>
{{range .}}<div class="item">
<div class="date">{{dateLabel .Date}}</div>
<span class="badge {{platformStyle .Platform}}">{{.Platform}}</span><span class="type">{{.ContentType}}</span>
<div class="topic">{{.Topic}}</div>
</div>
{{end}}</body>
</html>
`))

// ToPrintable renders a self-contained HTML document, one block per item in input order.
func ToPrintable(items []*models.CalendarItem) (string, error) {
	var sb strings.Builder
	if err := printableTmpl.Execute(&sb, items); err != nil {
		return "", fmt.Errorf("render printable calendar: %w", err)
	}
	return sb.String(), nil
}
