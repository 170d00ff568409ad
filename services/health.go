package services

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	StoreConnected   = "connected"
	StoreDegraded    = "degraded"
	StoreUnavailable = "unavailable"

	maxReportedCollections = 10
	maxReportedError       = 80
)

type Diagnostic struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseName     string   `json:"database_name"`
	DatabaseURL      string   `json:"database_url"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Error            string   `json:"error,omitempty"`
}

/*
* Ping the store first; a failed ping means unavailable
* Then list collections; a failure there means degraded
 */
func (s *Service) Diagnose(ctx context.Context) Diagnostic {
	d := Diagnostic{
		Backend:          "running",
		Database:         StoreUnavailable,
		DatabaseName:     s.store.Name(),
		DatabaseURL:      "not set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if s.databaseURLSet {
		d.DatabaseURL = "set"
	}
	if err := s.store.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Error from store Ping")
		d.Error = truncate(err.Error())
		return d
	}
	d.ConnectionStatus = "Connected"
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Error from ListCollections")
		d.Database = StoreDegraded
		d.Error = truncate(err.Error())
		return d
	}
	if len(names) > maxReportedCollections {
		names = names[:maxReportedCollections]
	}
	d.Database = StoreConnected
	d.Collections = append(d.Collections, names...)
	return d
}

// truncate cuts s to at most maxReportedError bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxReportedError {
		return s
	}
	cut := maxReportedError
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
