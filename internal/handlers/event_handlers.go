package handlers

import (
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/gin-gonic/gin"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventHandler serves the stored event log
type EventHandler struct {
	reader interfaces.IEventReader
}

// NewEventHandler creates an event handler
func NewEventHandler(reader interfaces.IEventReader) *EventHandler {
	return &EventHandler{reader: reader}
}

// ListEvents godoc
// @Summary      Recent relay events
// @Tags         events
// @Produce      json
// @Param        type   query  string  false  "Event type"
// @Param        limit  query  int     false  "Maximum number of events"
// @Success      200  {array}  events.Event
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultEventLimit, maxEventLimit)
	if !ok {
		return
	}
	list, err := h.reader.Recent(c.Request.Context(), events.Type(c.Query("type")), int32(limit))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if list == nil {
		list = []events.Event{}
	}
	sendList(c, list)
}
