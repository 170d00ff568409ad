package services

import (
	"time"

	"CareTriage/cache"
	"CareTriage/db"
)

// Service mediates between validated entities and the document store.
type Service struct {
	store db.Store
	cache cache.Cache
	now   func() time.Time

	databaseURLSet bool
}

func New(store db.Store, c cache.Cache) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{
		store: store,
		cache: c,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithDatabaseURL records whether a store URL was configured, for diagnostics.
func (s *Service) WithDatabaseURL(set bool) *Service {
	s.databaseURLSet = set
	return s
}
