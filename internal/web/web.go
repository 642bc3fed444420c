// Package web holds the server-rendered dashboard page.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jengzang/ev-dashboard-go/internal/charts"
	"github.com/jengzang/ev-dashboard-go/internal/export"
	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// PageTemplate is the template name of the dashboard page
const PageTemplate = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"contains": contains,
		"comma":    func(n int) string { return humanize.Comma(int64(n)) },
		"money":    func(f float64) string { return "$" + humanize.Commaf(f) },
	}).ParseFS(templateFS, "templates/*.html"))
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// TabLink is one entry of the tab bar
type TabLink struct {
	Name   string
	Title  string
	URL    template.URL
	Active bool
}

// ChartPanel is one chart of the active tab
type ChartPanel struct {
	Spec     charts.Spec
	ImageURL template.URL
}

// ExportLink is one download button of the data tab
type ExportLink struct {
	Label string
	URL   template.URL
}

// Page is everything the dashboard template renders
type Page struct {
	Title       string
	Tabs        []TabLink
	ActiveTab   string
	Options     models.FilterOptions
	Summary     models.Summary
	Charts      []ChartPanel
	Records     *models.RecordsPage
	Exports     []ExportLink
	PrevURL     template.URL
	NextURL     template.URL
	GeneratedAt string
}

// PageInput carries the computed parts of one dashboard request
type PageInput struct {
	ActiveTab string
	Options   models.FilterOptions
	Summary   models.Summary
	Charts    []charts.Spec
	Records   *models.RecordsPage
	Query     url.Values // Reproduces the effective selection
	Now       time.Time
}

// NewPage assembles the template data; every link carries the effective selection
func NewPage(in PageInput) Page {
	p := Page{
		Title:       "Electric Vehicle Market Intelligence",
		ActiveTab:   in.ActiveTab,
		Options:     in.Options,
		Summary:     in.Summary,
		Records:     in.Records,
		GeneratedAt: in.Now.Format("2006-01-02 15:04"),
	}

	for _, t := range charts.Tabs {
		q := cloneValues(in.Query)
		q.Set("tab", t.Name)
		p.Tabs = append(p.Tabs, TabLink{
			Name:   t.Name,
			Title:  t.Title,
			URL:    template.URL("/?" + q.Encode()),
			Active: t.Name == in.ActiveTab,
		})
	}

	for _, s := range in.Charts {
		p.Charts = append(p.Charts, ChartPanel{
			Spec:     s,
			ImageURL: template.URL("/api/v1/charts/" + url.PathEscape(in.ActiveTab) + "/" + url.PathEscape(s.ID) + "/png?" + in.Query.Encode()),
		})
	}

	if in.Records != nil {
		for _, f := range export.Formats {
			q := cloneValues(in.Query)
			q.Set("format", string(f))
			p.Exports = append(p.Exports, ExportLink{
				Label: "Download " + f.Label(),
				URL:   template.URL("/api/v1/export?" + q.Encode()),
			})
		}
		p.PrevURL, p.NextURL = pageLinks(in.Query, in.ActiveTab, *in.Records)
	}
	return p
}

func pageLinks(query url.Values, tab string, page models.RecordsPage) (prev, next template.URL) {
	link := func(offset int) template.URL {
		q := cloneValues(query)
		q.Set("tab", tab)
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(page.Limit))
		return template.URL("/?" + q.Encode())
	}
	if page.Offset > 0 {
		o := page.Offset - page.Limit
		if o < 0 {
			o = 0
		}
		prev = link(o)
	}
	if page.Offset+page.Limit < page.Total {
		next = link(page.Offset + page.Limit)
	}
	return prev, next
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
