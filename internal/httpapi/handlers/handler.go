package handlers

import (
	"sheetbox/internal/dispatch"
)

type Handler struct {
	d *dispatch.Dispatcher
}

func New(d *dispatch.Dispatcher) *Handler {
	return &Handler{d: d}
}
