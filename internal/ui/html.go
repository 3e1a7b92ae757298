package ui

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// html accumulates the first write error so page bodies read top to bottom.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf formats into the page. Callers escape user data with esc.
func (h *html) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func (h *html) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// cls merges tailwind classes, later ones winning on conflicts.
func cls(classes ...string) string {
	return twmerge.Merge(classes...)
}
