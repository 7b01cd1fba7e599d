// Package http serves the meta endpoints: liveness, readiness, build info,
// and the numbering plan in force
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"numwash/internal/core/phone"
	"numwash/internal/core/version"
	"numwash/internal/modkit/httpkit"
	ptime "numwash/internal/platform/time"
)

// Pinger matches any adapter that can be probed for readiness
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps carries what the handlers report on. PG and Contacts stay nil when the
// deployment runs without that backend
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Contacts    any
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/plan", h.plan)
}

//
// Wire DTOs and route docs
//

// HealthResponse is the liveness payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"numwash-api"`
	Started string `json:"started"  example:"2026-02-10T08:30:00Z"`
	Now     string `json:"now"      example:"2026-02-10T08:35:00Z"`
}

// ReadyCheck is the probe result for one backend
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // one of ok, fail, skipped, unknown
	Error  string `json:"error,omitempty" example:"dial tcp 10.40.0.5:5432: connect: connection refused"`
}

// ReadyResponse rolls the per-backend probes into one verdict
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // one of ok, degraded, fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-02-10T08:35:00Z"`
}

// ServiceResponse reports identity and uptime
type ServiceResponse struct {
	Name    string `json:"name"    example:"numwash-api"`
	Started string `json:"started" example:"2026-02-10T08:30:00Z"`
	Uptime  int64  `json:"uptime"  example:"8542"`
}

// PlanResponse reports the numbering plan the cleanup rules enforce
type PlanResponse struct {
	CallingCode    string            `json:"calling_code"    example:"351"`
	NationalLength int               `json:"national_length" example:"9"`
	FirstDigits    string            `json:"first_digits"    example:"239"`
	MobileSecond   string            `json:"mobile_second"   example:"1-6"`
	Build          version.BuildInfo `json:"build"`
}

// probe pings one backend handle; nil handles count as skipped and handles
// that cannot be pinged as unknown
func probe(ctx stdctx.Context, name string, target any) ReadyCheck {
	if target == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := target.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// verdict folds the per-backend probes into the overall status
func verdict(checks []ReadyCheck) string {
	state := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "unknown":
			state = "degraded"
		}
	}
	return state
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: ptime.Stamp(h.deps.StartedAt),
		Now:     ptime.NowStamp(),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with per-backend probes
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 3*time.Second)
	defer cancel()

	// skipped probes stay neutral so a single-store deployment reports ok
	checks := []ReadyCheck{
		probe(ctx, "pg", h.deps.PG),
		probe(ctx, "contacts", h.deps.Contacts),
	}

	return ReadyResponse{
		Status: verdict(checks),
		Checks: checks,
		Now:    ptime.NowStamp(),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Version and build metadata
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service identity and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: ptime.Stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/plan Meta metaPlan
// @Summary Numbering plan in force
// @Tags Meta
// @Produce json
// @Success 200 type PlanResponse ok
// @Router /meta/plan [get]
func (h *handlers) plan(_ *http.Request) (any, error) {
	p := phone.PT
	return PlanResponse{
		CallingCode:    p.CallingCode,
		NationalLength: p.NationalLen,
		FirstDigits:    p.FirstDigits,
		MobileSecond:   string(p.MobileSecondLo) + "-" + string(p.MobileSecondHi),
		Build:          version.Info(),
	}, nil
}
