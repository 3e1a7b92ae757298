package ui

import (
	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/model"
)

type SettingsView struct {
	User        *model.User
	RecordCount int
	Backend     string
	Message     string
	Error       string
}

func SettingsPage(v SettingsView) templ.Component {
	return Layout("Settings", component(func(h *html) {
		h.raw(`<h1 class="text-2xl font-semibold">Settings</h1>`)
		flash(h, v.Message, false)
		flash(h, v.Error, true)

		if v.User != nil {
			h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">Profile</h2>`)
			h.rawf(`<p class="text-sm text-gray-600">Signed in as %s</p>`, esc(v.User.Email))
			h.raw(`<form method="post" action="/app/settings/name" class="flex gap-2 my-2">`)
			h.render(csrfField())
			h.rawf(`<input type="text" name="name" value="%s" maxlength="100" class="input">`, esc(v.User.Name))
			h.raw(`<button type="submit" class="btn">Save name</button></form></section>`)
		}

		h.raw(`<section class="card my-4"><h2 class="text-lg font-semibold">Data</h2>`)
		h.rawf(`<p class="text-sm text-gray-600">%d records stored (%s backend).</p>`, v.RecordCount, esc(v.Backend))
		h.raw(`<p class="my-2"><a href="/app/settings/backup" class="btn">Download backup</a></p>`)

		h.raw(`<form method="post" action="/app/settings/restore" enctype="multipart/form-data" class="flex gap-2 my-2">`)
		h.render(csrfField())
		h.raw(`<input type="file" name="backup" accept=".json,application/json" required class="input">`)
		h.raw(`<button type="submit" class="btn">Restore backup</button></form>`)
		h.raw(`<p class="text-sm text-gray-600">Restoring replaces every current record.</p></section>`)

		h.raw(`<section class="card card-danger my-4"><h2 class="text-lg font-semibold">Clear all data</h2>`)
		h.raw(`<form method="post" action="/app/settings/clear" class="flex gap-2 my-2">`)
		h.render(csrfField())
		h.raw(`<label class="text-sm"><input type="checkbox" name="confirm" value="yes" required> I understand this cannot be undone</label>`)
		h.rawf(`<button type="submit" class="%s">Clear data</button></form></section>`, cls("btn", "btn-missed"))
	}))
}
