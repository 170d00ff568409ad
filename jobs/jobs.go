package jobs

import (
	"context"
	"sync"
	"time"

	"CareTriage/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Diagnoser is the part of the record service the probe needs.
type Diagnoser interface {
	Diagnose(ctx context.Context) services.Diagnostic
}

// HealthProbe periodically diagnoses the document store and logs when its
// status changes.
type HealthProbe struct {
	svc     Diagnoser
	timeout time.Duration

	mu   sync.Mutex
	last string
}

func NewHealthProbe(svc Diagnoser, timeout time.Duration) *HealthProbe {
	return &HealthProbe{svc: svc, timeout: timeout}
}

// Run performs one probe and returns the observed status.
func (p *HealthProbe) Run() string {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	d := p.svc.Diagnose(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if d.Database != p.last {
		evt := log.Info()
		if d.Database != services.StoreConnected {
			evt = log.Warn().Str("error", d.Error)
		}
		evt.Str("previous", p.last).Str("status", d.Database).Msg("Document store status changed")
		p.last = d.Database
	}
	return d.Database
}

// Last returns the most recently observed status, "" before the first run.
func (p *HealthProbe) Last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

/*
* Probe once right away so startup problems are logged immediately
* Then schedule the probe on the given cron schedule
 */
func StartHealthProbe(schedule string, probe *HealthProbe) (func(), error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { probe.Run() }); err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("Error while scheduling health probe")
		return nil, err
	}
	probe.Run()
	c.Start()
	log.Info().Str("schedule", schedule).Msg("Health probe scheduled")
	return func() { <-c.Stop().Done() }, nil
}
