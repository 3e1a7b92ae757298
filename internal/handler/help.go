package handler

import (
	"net/http"

	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/ui"
)

type HelpHandler struct {
	helpService *service.HelpService
}

func NewHelpHandler(helpService *service.HelpService) *HelpHandler {
	return &HelpHandler{helpService: helpService}
}

func (h *HelpHandler) HelpPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.helpService.Page()
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to load help page", "error", err)
		ui.RenderStatus(w, r, http.StatusInternalServerError, ui.ErrorPage("The help page is unavailable."))
		return
	}
	ui.Render(w, r, ui.HelpPage(page.Title, page.Description, page.HTML, page.Headings))
}
