package ui

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

type ReportView struct {
	Filters model.ReportFilters
	Range   string
	Report  *model.ReportData
	Error   string
}

var quickRanges = []string{"7", "30", "90", "365"}

// query rebuilds the filter query string for export links.
func (v ReportView) query() string {
	q := url.Values{}
	q.Set("start", v.Filters.StartDate)
	q.Set("end", v.Filters.EndDate)
	if v.Filters.SortBy != "" {
		q.Set("sort", v.Filters.SortBy)
	}
	if v.Filters.SortOrder != "" {
		q.Set("order", v.Filters.SortOrder)
	}
	for _, id := range v.Filters.PrayerIDs {
		q.Add("prayer", id)
	}
	return q.Encode()
}

func ReportPage(v ReportView) templ.Component {
	return Layout("Reports", component(func(h *html) {
		h.raw(`<h1 class="text-2xl font-semibold">Reports</h1>`)
		flash(h, v.Error, true)
		reportFilters(h, v)

		if v.Report == nil {
			return
		}
		r := v.Report

		h.rawf(`<h2 class="text-lg font-semibold my-4">%s report, %s to %s</h2>`,
			esc(stats.PeriodLabel(r.Period)), esc(r.StartDate), esc(r.EndDate))
		h.raw(`<section class="grid grid-cols-4 gap-4">`)
		statCard(h, "Offered", fmt.Sprintf("%d / %d", r.TotalOffered, r.TotalPrayers), "")
		statCard(h, "Missed", fmt.Sprint(r.TotalMissed), "text-red-700")
		statCard(h, "On time", fmt.Sprint(r.TotalOnTime), "text-emerald-700")
		statCard(h, "Qaza", fmt.Sprint(r.TotalQaza), "text-amber-700")
		statCard(h, "Home", fmt.Sprint(r.TotalHome), "")
		statCard(h, "Masjid", fmt.Sprint(r.TotalMasjid), "")
		statCard(h, "Jumma", fmt.Sprint(r.TotalJumma), "")
		statCard(h, "Completion", fmt.Sprintf("%d%%", r.CompletionPercentage), "")
		h.raw(`</section>`)

		q := esc(v.query())
		h.rawf(`<p class="flex gap-2 my-4"><a class="btn" href="/app/report/export.json?%s">Export JSON</a><a class="btn" href="/app/report/export.csv?%s">Export CSV</a></p>`, q, q)

		h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">By prayer</h2><table class="table"><thead><tr>`)
		h.raw(`<th>Prayer</th><th>Offered</th><th>Missed</th><th>On time</th><th>Qaza</th><th>Home</th><th>Masjid</th><th>Completion</th></tr></thead><tbody>`)
		for _, p := range model.Prayers {
			b, ok := r.PrayerBreakdown[p.ID]
			if !ok {
				continue
			}
			h.rawf(`<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
				esc(b.Name), b.Offered, b.Missed, b.OnTime, b.Qaza, b.Home, b.Masjid, progress(b.Percentage))
		}
		h.raw(`</tbody></table></section>`)

		h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">By day</h2><table class="table"><thead><tr><th>Date</th>`)
		for _, p := range model.Prayers {
			h.rawf(`<th>%s</th>`, esc(p.Name))
		}
		h.raw(`<th>Offered</th><th>Missed</th><th>Completion</th></tr></thead><tbody>`)
		for i := range r.DailyRecords {
			day := &r.DailyRecords[i]
			h.rawf(`<tr><td><a href="/app/tracker?date=%s">%s</a></td>`, esc(day.Date), esc(day.Date))
			for _, p := range model.Prayers {
				rec, ok := day.Record(p.ID)
				if !ok {
					h.raw(`<td class="text-gray-600">-</td>`)
					continue
				}
				h.rawf(`<td><span class="%s">%s</span></td>`, statusBadge(rec.Status), esc(rec.Status.Label()))
			}
			h.rawf(`<td>%d</td><td>%d</td><td>%s</td></tr>`, day.TotalOffered, day.TotalMissed, progress(day.CompletionPercentage))
		}
		h.raw(`</tbody></table></section>`)
	}))
}

func reportFilters(h *html, v ReportView) {
	h.raw(`<div class="flex gap-2 my-4">`)
	for _, days := range quickRanges {
		class := "btn btn-ghost"
		if v.Range == days {
			class = cls(class, "btn-active")
		}
		h.rawf(`<a href="/app/report?range=%s" class="%s">Last %s days</a>`, days, class, days)
	}
	h.raw(`</div>`)

	f := v.Filters
	h.raw(`<form method="get" action="/app/report" class="card flex items-center gap-2">`)
	h.rawf(`<label>From <input type="date" name="start" value="%s" class="input"></label>`, esc(f.StartDate))
	h.rawf(`<label>To <input type="date" name="end" value="%s" class="input"></label>`, esc(f.EndDate))

	h.raw(`<select name="sort" class="input">`)
	for _, opt := range [][2]string{{model.SortByDate, "Date"}, {model.SortByCompletion, "Completion"}, {model.SortByPrayer, "Prayers offered"}} {
		h.rawf(`<option value="%s"%s>Sort by %s</option>`, opt[0], selectedIf(f.SortBy == opt[0]), opt[1])
	}
	h.raw(`</select><select name="order" class="input">`)
	h.rawf(`<option value="%s"%s>Ascending</option>`, model.SortAsc, selectedIf(f.SortOrder != model.SortDesc))
	h.rawf(`<option value="%s"%s>Descending</option>`, model.SortDesc, selectedIf(f.SortOrder == model.SortDesc))
	h.raw(`</select>`)

	for _, p := range model.Prayers {
		checked := ""
		if slices.Contains(f.PrayerIDs, p.ID) {
			checked = " checked"
		}
		h.rawf(`<label class="text-sm"><input type="checkbox" name="prayer" value="%s"%s> %s</label>`, p.ID, checked, esc(p.Name))
	}
	h.raw(`<button type="submit" class="btn btn-primary">Apply</button></form>`)
}

func selectedIf(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}
