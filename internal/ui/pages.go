package ui

import (
	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/markdown"
)

// HelpPage wraps body, HTML rendered from the bundled markdown content. A
// contents list linking to each section is shown when there are two or more.
func HelpPage(title, description, body string, sections []markdown.Heading) templ.Component {
	return Layout(title, component(func(h *html) {
		h.rawf(`<article class="card prose"><h1 class="text-2xl font-semibold">%s</h1>`, esc(title))
		if description != "" {
			h.rawf(`<p class="text-gray-600">%s</p>`, esc(description))
		}
		if len(sections) > 1 {
			h.raw(`<nav class="toc" aria-label="Contents"><ul>`)
			for _, s := range sections {
				h.rawf(`<li><a href="#%s">%s</a></li>`, esc(s.ID), esc(s.Text))
			}
			h.raw(`</ul></nav>`)
		}
		h.raw(body)
		h.raw(`</article>`)
	}))
}

func NotFoundPage() templ.Component {
	return Layout("Not found", component(func(h *html) {
		h.raw(`<div class="card"><h1 class="text-2xl font-semibold">Page not found</h1>`)
		h.raw(`<p class="my-2">The page you asked for does not exist.</p>`)
		h.raw(`<a href="/app/dashboard" class="btn btn-primary">Back to dashboard</a></div>`)
	}))
}

func ErrorPage(message string) templ.Component {
	return Layout("Error", component(func(h *html) {
		h.raw(`<div class="card"><h1 class="text-2xl font-semibold">Something went wrong</h1>`)
		h.rawf(`<p class="my-2">%s</p></div>`, esc(message))
	}))
}
