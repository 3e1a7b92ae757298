package ui

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

type TrackerView struct {
	Date    string
	Prev    string
	Next    string
	Summary model.DaySummary
	Error   string
}

var markActions = []struct {
	value string
	label string
	class string
}{
	{value: string(model.StatusOnTime), label: "On time", class: "btn-on-time"},
	{value: string(model.StatusQaza), label: "Qaza", class: "btn-qaza"},
	{value: string(model.StatusMissed), label: "Missed", class: "btn-missed"},
}

func TrackerPage(v TrackerView) templ.Component {
	return Layout("Tracker", component(func(h *html) {
		flash(h, v.Error, true)

		h.raw(`<div class="flex items-center justify-between">`)
		h.rawf(`<a href="/app/tracker?date=%s" class="btn btn-ghost">&larr; %s</a>`, esc(v.Prev), esc(v.Prev))
		h.raw(`<form method="get" action="/app/tracker" class="flex gap-2">`)
		h.rawf(`<input type="date" name="date" value="%s" class="input">`, esc(v.Date))
		h.raw(`<button type="submit" class="btn">Go</button></form>`)
		h.rawf(`<a href="/app/tracker?date=%s" class="btn btn-ghost">%s &rarr;</a>`, esc(v.Next), esc(v.Next))
		h.raw(`</div>`)

		h.rawf(`<p class="my-4 text-gray-600">%d of %d offered, %d%% complete</p>`,
			v.Summary.TotalOffered, model.CatalogSize(), v.Summary.CompletionPercentage)

		h.raw(`<div class="grid grid-cols-1 gap-4">`)
		for _, p := range model.Prayers {
			prayerCard(h, v, p)
		}
		h.raw(`</div>`)
	}))
}

func prayerCard(h *html, v TrackerView, p model.Prayer) {
	r, marked := recordFor(v.Summary.Prayers, p.ID)

	h.rawf(`<article class="card" id="prayer-%s">`, esc(p.ID))
	h.raw(`<div class="flex items-center justify-between"><div>`)
	h.rawf(`<h2 class="text-lg font-semibold">%s <span class="text-gray-600" lang="ar">%s</span></h2>`,
		esc(stats.DisplayName(p, v.Date)), esc(p.ArabicName))
	h.rawf(`<div class="text-sm text-gray-600">%s</div></div>`, esc(p.Time))
	if marked {
		label := r.Status.Label()
		if r.Location != "" {
			label = fmt.Sprintf("%s, %s", label, locationLabel(r.Location))
		}
		h.rawf(`<span class="%s">%s</span>`, statusBadge(r.Status), esc(label))
	} else {
		h.raw(`<span class="badge">Not marked</span>`)
	}
	h.raw(`</div>`)

	h.rawf(`<form method="post" action="/app/tracker/%s/%s" class="flex items-center gap-2 my-2">`, esc(v.Date), esc(p.ID))
	h.render(csrfField())
	h.raw(`<select name="location" class="input"><option value="">Location</option>`)
	for _, loc := range []model.Location{model.LocationHome, model.LocationMasjid} {
		selected := ""
		if marked && r.Location == loc {
			selected = " selected"
		}
		h.rawf(`<option value="%s"%s>%s</option>`, loc, selected, esc(locationLabel(loc)))
	}
	h.raw(`</select>`)
	for _, a := range markActions {
		class := cls("btn", a.class)
		if marked && string(r.Status) == a.value {
			class = cls(class, "btn-active")
		}
		h.rawf(`<button type="submit" name="action" value="%s" class="%s">%s</button>`, a.value, class, esc(a.label))
	}
	h.raw(`</form></article>`)
}

func locationLabel(l model.Location) string {
	if l == model.LocationMasjid {
		return "Masjid"
	}
	return "Home"
}
