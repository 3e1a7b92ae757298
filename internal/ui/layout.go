package ui

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/ctxkeys"
)

type navItem struct {
	href  string
	label string
}

var navItems = []navItem{
	{href: "/app/dashboard", label: "Dashboard"},
	{href: "/app/tracker", label: "Tracker"},
	{href: "/app/report", label: "Reports"},
	{href: "/app/settings", label: "Settings"},
	{href: "/help", label: "Help"},
}

const (
	navLink       = "px-3 py-2 rounded text-sm text-gray-600 hover:bg-gray-100"
	navLinkActive = "bg-emerald-50 text-emerald-700 font-semibold"
)

// Layout is the page shell: header, navigation and the signed-in name.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(h *html) {
		appName := "Namaz Tracker"
		googleEnabled := false
		if cfg := ctxkeys.Config(h.ctx); cfg != nil {
			appName = cfg.AppName
			googleEnabled = cfg.GoogleClientID != ""
		}
		path := ctxkeys.URLPath(h.ctx)

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s | %s</title>`, esc(title), esc(appName))
		h.raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.raw(`</head><body class="bg-gray-50 text-gray-900">`)

		h.raw(`<header class="border-b bg-white"><div class="container flex items-center justify-between py-3">`)
		h.rawf(`<a href="/app/dashboard" class="text-lg font-semibold text-emerald-700">%s</a>`, esc(appName))
		h.raw(`<nav class="flex gap-2">`)
		for _, item := range navItems {
			class := navLink
			if path == item.href || strings.HasPrefix(path, item.href+"/") {
				class = cls(navLink, navLinkActive)
			}
			h.rawf(`<a href="%s" class="%s">%s</a>`, item.href, class, esc(item.label))
		}
		h.raw(`</nav>`)

		h.raw(`<div class="flex items-center gap-2 text-sm">`)
		if user := ctxkeys.User(h.ctx); user != nil {
			h.rawf(`<span class="text-gray-600">%s</span>`, esc(user.DisplayName()))
			h.raw(`<form method="post" action="/auth/logout">`)
			h.render(csrfField())
			h.raw(`<button type="submit" class="btn btn-ghost">Sign out</button></form>`)
		} else if googleEnabled {
			h.raw(`<a href="/auth/google" class="btn btn-ghost">Sign in with Google</a>`)
		}
		h.raw(`</div></div></header>`)

		h.raw(`<main class="container py-6">`)
		h.render(body)
		h.raw(`</main></body></html>`)
	})
}

func csrfField() templ.Component {
	return component(func(h *html) {
		h.rawf(`<input type="hidden" name="csrf_token" value="%s">`, esc(ctxkeys.CSRFToken(h.ctx)))
	})
}

// flash shows a one-line notice above a page body.
func flash(h *html, message string, isError bool) {
	if message == "" {
		return
	}
	class := "alert alert-success"
	if isError {
		class = cls(class, "alert-error")
	}
	h.rawf(`<p class="%s" role="status">%s</p>`, class, esc(message))
}

func statCard(h *html, label string, value string, accent string) {
	h.rawf(`<div class="%s"><div class="text-sm text-gray-600">%s</div><div class="text-2xl font-semibold">%s</div></div>`,
		cls("card", accent), esc(label), esc(value))
}
