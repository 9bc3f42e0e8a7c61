package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/models/dtos"
)

// viewData is everything one render of the dashboard needs, embedded as a
// JSON island for the chart script.
type viewData struct {
	KPIs          dtos.KPISet                                `json:"kpis"`
	Routes        dtos.ChartPayload[dtos.RouteStat]          `json:"routes"`
	Airports      dtos.ChartPayload[dtos.AirportStat]        `json:"airports"`
	Monthly       dtos.ChartPayload[dtos.MonthlyStat]        `json:"monthly"`
	Cancellations dtos.ChartPayload[dtos.CancellationReason] `json:"cancellations"`
	Carriers      dtos.ChartPayload[dtos.CarrierCause]       `json:"carriers"`
}

func monthFromQuery(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return dataset.MonthAll
	}
	m, err := strconv.Atoi(raw)
	if err != nil || !dataset.ValidMonth(m) {
		return dataset.MonthAll
	}
	return m
}

// dashboardPage wraps the month selector and the swappable content area.
func dashboardPage(src *dataset.Source) (string, error) {
	content, err := dashboardContent(src)
	if err != nil {
		return "", err
	}

	var options strings.Builder
	options.WriteString(`<option value="All">All</option>`)
	for _, m := range src.MonthOptions() {
		selected := ""
		if m == src.Month() {
			selected = " selected"
		}
		fmt.Fprintf(&options, `<option value="%d"%s>%d</option>`, m, selected, m)
	}

	page := fmt.Sprintf(`
<div class="mb-6 flex items-center gap-3">
    <label for="month-select" class="font-semibold">Month</label>
    <select id="month-select" name="month"
            hx-get="/dashboard/partial"
            hx-trigger="change"
            hx-target="#dashboard-content"
            hx-swap="innerHTML"
            class="px-3 py-2 rounded-lg border border-gray-300 dark:border-gray-600 bg-white dark:bg-gray-800">
        %s
    </select>
</div>
<div id="dashboard-content">
%s
</div>
`, options.String(), content)
	return page, nil
}

// dashboardContent renders the KPI cards, the five chart panels, the
// recommendations block and the attribution line.
func dashboardContent(src *dataset.Source) (string, error) {
	view := viewData{
		KPIs: src.KPIs(),
	}
	view.Routes = payloadFor(src.TopRoutes())
	view.Airports = payloadFor(src.TopAirports())
	view.Monthly = payloadFor(src.MonthlyTrend())
	view.Cancellations = payloadFor(src.CancellationReasons())
	view.Carriers = payloadFor(src.CarrierDelays())
	if !view.Cancellations.Available {
		view.Cancellations.Message = src.FullNote()
	}

	blob, err := json.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("marshal dashboard data: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(kpiCards(view.KPIs))
	sb.WriteString(`<div class="grid grid-cols-1 xl:grid-cols-2 gap-6 mt-6">`)
	sb.WriteString(chartPanel("Top routes (by flights)", "chart-routes", view.Routes.Available, view.Routes.Message))
	sb.WriteString(chartPanel("Busiest origin airports", "chart-airports", view.Airports.Available, view.Airports.Message))
	sb.WriteString(chartPanel("Monthly average arrival delay", "chart-monthly", view.Monthly.Available, view.Monthly.Message))
	sb.WriteString(chartPanel("Cancellation reasons", "chart-cancellations", view.Cancellations.Available, view.Cancellations.Message))
	sb.WriteString(chartPanel("Average delay (by cause) — Top carriers", "chart-carriers", view.Carriers.Available, view.Carriers.Message))
	sb.WriteString(`</div>`)
	sb.WriteString(recommendationsBlock)
	sb.WriteString(`<script type="application/json" id="airfly-data">`)
	sb.Write(blob)
	sb.WriteString(`</script>`)
	sb.WriteString(chartScript)
	return sb.String(), nil
}

func payloadFor[T any](rows []T, res dataset.Resolution) dtos.ChartPayload[T] {
	if res == dataset.ResolutionUnavailable {
		return dtos.ChartPayload[T]{
			Available: false,
			Message:   "No data source available for this chart.",
			Rows:      []T{},
		}
	}
	if rows == nil {
		rows = []T{}
	}
	return dtos.ChartPayload[T]{Available: true, Rows: rows}
}

func kpiCards(kpis dtos.KPISet) string {
	if !kpis.Available {
		return fmt.Sprintf(`
<div class="p-4 rounded-lg bg-blue-50 dark:bg-blue-900/30 border border-blue-200 dark:border-blue-800 text-sm">
    ℹ️ %s
</div>`, kpis.Message)
	}
	card := `
    <div class="p-4 rounded-lg bg-white dark:bg-gray-800 border border-gray-200 dark:border-gray-700 shadow-sm">
        <div class="text-sm text-gray-600 dark:text-gray-400">%s</div>
        <div class="text-3xl font-bold mt-1">%s</div>
    </div>`
	return `<div class="grid grid-cols-1 md:grid-cols-3 gap-4">` +
		fmt.Sprintf(card, "Total flights", strconv.Itoa(kpis.TotalFlights)) +
		fmt.Sprintf(card, "Avg arrival delay (min)", strconv.FormatFloat(kpis.AvgArrDelay, 'f', 2, 64)) +
		fmt.Sprintf(card, "Cancellation rate", strconv.FormatFloat(kpis.CancellationRate, 'f', 2, 64)+"%") +
		`</div>`
}

func chartPanel(title, canvasID string, available bool, message string) string {
	body := fmt.Sprintf(`<canvas id="%s" height="260"></canvas>`, canvasID)
	if !available {
		body = fmt.Sprintf(`<div class="text-sm text-gray-600 dark:text-gray-400 py-8 text-center">ℹ️ %s</div>`, message)
	}
	return fmt.Sprintf(`
<div class="p-4 rounded-lg bg-white dark:bg-gray-800 border border-gray-200 dark:border-gray-700 shadow-sm">
    <h2 class="font-semibold mb-3">%s</h2>
    %s
</div>`, title, body)
}

const recommendationsBlock = `
<div class="mt-8">
    <h2 class="text-xl font-bold mb-2">Recommendations</h2>
    <ul class="list-disc ml-6 space-y-1 text-sm">
        <li>Focus staffing at peak departure hours.</li>
        <li>Target top delay-prone carriers for ops improvements.</li>
        <li>Prioritize winter-month preparations at high-delay airports.</li>
    </ul>
    <p class="mt-4 text-xs text-gray-500 dark:text-gray-400">Data source: giovamata/airlinedelaycauses (Kaggle).</p>
</div>`

// chartScript reads the JSON island and draws the five charts. Wrapped in
// an IIFE so HTMX swaps can re-run it without redeclaration errors.
const chartScript = `
<script>
(function () {
    var el = document.getElementById('airfly-data');
    if (!el || typeof Chart === 'undefined') return;
    var data = JSON.parse(el.textContent);

    var causeColors = {
        'CarrierDelay': '#3b82f6',
        'WeatherDelay': '#06b6d4',
        'NASDelay': '#f59e0b',
        'SecurityDelay': '#ef4444',
        'LateAircraftDelay': '#8b5cf6'
    };

    function draw(id, cfg) {
        var canvas = document.getElementById(id);
        if (!canvas) return;
        var prev = Chart.getChart(canvas);
        if (prev) prev.destroy();
        new Chart(canvas, cfg);
    }

    if (data.routes.available) {
        draw('chart-routes', {
            type: 'bar',
            data: {
                labels: data.routes.rows.map(function (r) { return r.route; }),
                datasets: [{ label: 'Flights', data: data.routes.rows.map(function (r) { return r.flights; }), backgroundColor: '#3b82f6' }]
            },
            options: { indexAxis: 'y', responsive: true, plugins: { legend: { display: false } } }
        });
    }

    if (data.airports.available) {
        draw('chart-airports', {
            type: 'bar',
            data: {
                labels: data.airports.rows.map(function (r) { return r.airport; }),
                datasets: [{ label: 'Departures', data: data.airports.rows.map(function (r) { return r.departures; }), backgroundColor: '#06b6d4' }]
            },
            options: { indexAxis: 'y', responsive: true, plugins: { legend: { display: false } } }
        });
    }

    if (data.monthly.available) {
        draw('chart-monthly', {
            type: 'line',
            data: {
                labels: data.monthly.rows.map(function (r) { return r.month; }),
                datasets: [{ label: 'Avg arrival delay (min)', data: data.monthly.rows.map(function (r) { return r.avg_arr_delay; }), borderColor: '#3b82f6', pointRadius: 4, tension: 0.2 }]
            },
            options: { responsive: true }
        });
    }

    if (data.cancellations.available) {
        draw('chart-cancellations', {
            type: 'bar',
            data: {
                labels: data.cancellations.rows.map(function (r) { return r.reason; }),
                datasets: [{ label: 'Count', data: data.cancellations.rows.map(function (r) { return r.count; }), backgroundColor: '#ef4444' }]
            },
            options: { indexAxis: 'y', responsive: true, plugins: { legend: { display: false } } }
        });
    }

    if (data.carriers.available) {
        var carriers = [];
        data.carriers.rows.forEach(function (r) {
            if (carriers.indexOf(r.carrier) === -1) carriers.push(r.carrier);
        });
        var causes = Object.keys(causeColors);
        var datasets = causes.map(function (cause) {
            return {
                label: cause,
                backgroundColor: causeColors[cause],
                data: carriers.map(function (c) {
                    var row = data.carriers.rows.find(function (r) { return r.carrier === c && r.cause === cause; });
                    return row ? row.minutes : 0;
                })
            };
        });
        draw('chart-carriers', {
            type: 'bar',
            data: { labels: carriers, datasets: datasets },
            options: { responsive: true }
        });
    }
})();
</script>`
