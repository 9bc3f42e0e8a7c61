package ui

import (
	"html/template"
	"net/http"
)

// baseLayout is the page shell every dashboard view renders into. Chart.js
// draws the charts, HTMX swaps the dashboard content when the month filter
// changes.
const baseLayout = `<!DOCTYPE html>
<html lang="en" class="{{if eq .Theme "dark"}}dark{{end}}">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.12"></script>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.3"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <script>tailwind.config = { darkMode: 'class' };</script>
</head>
<body class="bg-gray-50 dark:bg-gray-900 text-gray-900 dark:text-gray-100 min-h-screen">
    <header class="px-6 py-4 border-b border-gray-200 dark:border-gray-700 bg-white dark:bg-gray-800 flex items-center justify-between">
        <div>
            <h1 class="text-2xl font-bold">✈️ AirFly Insights — Delay hotspots &amp; cancellations</h1>
            <p class="text-sm text-gray-600 dark:text-gray-400">Story: Where delays &amp; cancellations happen most, when, why, and quick recommendations.</p>
        </div>
        <form hx-post="/ui/theme" hx-swap="none">
            <button name="theme" value="{{if eq .Theme "dark"}}light{{else}}dark{{end}}"
                    class="px-3 py-1 text-sm border border-gray-300 dark:border-gray-600 rounded-lg"
                    onclick="setTimeout(function(){location.reload()}, 150)">
                {{if eq .Theme "dark"}}☀️ Light{{else}}🌙 Dark{{end}}
            </button>
        </form>
    </header>
    <main class="p-6">
        {{.Content | safeHTML}}
    </main>
</body>
</html>`

// RenderTemplate renders a view into the base layout
func RenderTemplate(w http.ResponseWriter, data map[string]interface{}) error {
	funcMap := template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	t, err := template.New("base").Funcs(funcMap).Parse(baseLayout)
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// getThemeFromRequest reads the theme preference cookie, defaulting to light
func getThemeFromRequest(r *http.Request) string {
	cookie, err := r.Cookie("theme_preference")
	if err != nil || cookie.Value == "" {
		return "light"
	}
	if cookie.Value != "light" && cookie.Value != "dark" {
		return "light"
	}
	return cookie.Value
}
