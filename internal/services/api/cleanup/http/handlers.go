// Package http provides http transport for cleanup
package http

import (
	stdhttp "net/http"

	"numwash/internal/modkit/httpkit"
	"numwash/internal/services/api/cleanup/domain"
	svc "numwash/internal/services/api/cleanup/service"
)

// Register mounts cleanup endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/load", h.load)
	httpkit.Get(r, "/state", h.state)
	httpkit.Get(r, "/contacts", h.contacts)
	httpkit.Post(r, "/detect", h.detect)
	httpkit.PostJSON[domain.SetActionInput](r, "/action", h.setAction)
	httpkit.Post(r, "/apply", h.apply)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /cleanup/load Cleanup cleanupLoad
// @Summary Load contacts from the configured store
// @Tags Cleanup
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Router /cleanup/load [post]
func (h *handlers) load(r *stdhttp.Request) (any, error) {
	return h.svc.Load(r.Context())
}

// swagger:route GET /cleanup/state Cleanup cleanupState
// @Summary Current session snapshot
// @Tags Cleanup
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Router /cleanup/state [get]
func (h *handlers) state(_ *stdhttp.Request) (any, error) {
	return h.svc.State(), nil
}

// swagger:route GET /cleanup/contacts Cleanup cleanupContacts
// @Summary Loaded contacts with pending actions
// @Tags Cleanup
// @Produce json
// @Success 200 {array} domain.ContactView "ok"
// @Router /cleanup/contacts [get]
func (h *handlers) contacts(_ *stdhttp.Request) (any, error) {
	return h.svc.Contacts(), nil
}

// swagger:route POST /cleanup/detect Cleanup cleanupDetect
// @Summary Classify loaded numbers and stage suggested actions
// @Tags Cleanup
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Router /cleanup/detect [post]
func (h *handlers) detect(_ *stdhttp.Request) (any, error) {
	return h.svc.Detect()
}

// swagger:route POST /cleanup/action Cleanup cleanupSetAction
// @Summary Override the pending action for one phone entry
// @Tags Cleanup
// @Accept json
// @Produce json
// @Param payload body domain.SetActionInput true "Override"
// @Success 200 {object} domain.StateView "ok"
// @Router /cleanup/action [post]
func (h *handlers) setAction(_ *stdhttp.Request, in domain.SetActionInput) (any, error) {
	return h.svc.SetAction(in)
}

// swagger:route POST /cleanup/apply Cleanup cleanupApply
// @Summary Execute pending edits against the contact store
// @Tags Cleanup
// @Produce json
// @Success 200 {object} domain.ApplyResultView "ok"
// @Router /cleanup/apply [post]
func (h *handlers) apply(r *stdhttp.Request) (any, error) {
	return h.svc.Apply(r.Context())
}
