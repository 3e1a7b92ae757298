package ui

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

type DashboardView struct {
	Date   string
	Today  model.DaySummary
	Week   []model.DailyRecord
	Weekly model.WeeklySummary
}

func DashboardPage(v DashboardView) templ.Component {
	return Layout("Dashboard", component(func(h *html) {
		h.rawf(`<h1 class="text-2xl font-semibold">Today, %s</h1>`, esc(v.Date))

		h.raw(`<section class="grid grid-cols-4 gap-4 my-4">`)
		statCard(h, "Offered", fmt.Sprintf("%d / %d", v.Today.TotalOffered, model.CatalogSize()), "")
		statCard(h, "On time", fmt.Sprint(v.Today.TotalOnTime), "text-emerald-700")
		statCard(h, "Qaza", fmt.Sprint(v.Today.TotalQaza), "text-amber-700")
		statCard(h, "Completion", fmt.Sprintf("%d%%", v.Today.CompletionPercentage), "")
		h.raw(`</section>`)

		h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">Today's prayers</h2><ul class="flex gap-2 my-2">`)
		for _, p := range model.Prayers {
			name := esc(stats.DisplayName(p, v.Date))
			r, ok := recordFor(v.Today.Prayers, p.ID)
			if !ok {
				h.rawf(`<li class="badge">%s: not marked</li>`, name)
				continue
			}
			h.rawf(`<li class="%s">%s: %s</li>`, statusBadge(r.Status), name, esc(r.Status.Label()))
		}
		h.rawf(`</ul><a href="/app/tracker?date=%s" class="btn btn-primary">Open tracker</a></section>`, esc(v.Date))

		h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">This week</h2>`)
		h.raw(`<div class="grid grid-cols-4 gap-4 my-2">`)
		statCard(h, "Offered", fmt.Sprintf("%d / %d", v.Weekly.TotalOffered, v.Weekly.TotalDays*model.CatalogSize()), "")
		statCard(h, "Logged misses", fmt.Sprint(v.Weekly.TotalMissed), "text-red-700")
		statCard(h, "Qaza", fmt.Sprint(v.Weekly.TotalQaza), "text-amber-700")
		statCard(h, "Completion", fmt.Sprintf("%d%%", v.Weekly.CompletionPercentage), "")
		h.raw(`</div><table class="table"><thead><tr><th>Date</th><th>Offered</th><th>Completion</th></tr></thead><tbody>`)
		for _, d := range v.Week {
			h.rawf(`<tr><td><a href="/app/tracker?date=%s">%s</a></td><td>%d</td><td>%s</td></tr>`,
				esc(d.Date), esc(d.Date), d.TotalOffered, progress(d.CompletionPercentage))
		}
		h.raw(`</tbody></table></section>`)
	}))
}

func recordFor(records []model.PrayerRecord, prayerID string) (model.PrayerRecord, bool) {
	for _, r := range records {
		if r.PrayerID == prayerID {
			return r, true
		}
	}
	return model.PrayerRecord{}, false
}

func statusBadge(s model.PrayerStatus) string {
	switch s {
	case model.StatusOnTime:
		return cls("badge", "badge-on-time")
	case model.StatusQaza:
		return cls("badge", "badge-qaza")
	default:
		return cls("badge", "badge-missed")
	}
}

func progress(pct int) string {
	return fmt.Sprintf(`<span class="progress"><span class="progress-bar" style="width:%d%%"></span></span> %d%%`, pct, pct)
}
