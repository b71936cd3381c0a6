package source

import (
	"context"
	"sync"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
)

// CachedSource guarda em memória os registros já lidos de cada cidade.
// Os slices retornados são compartilhados entre consultas e não devem ser alterados.
type CachedSource struct {
	next  repository.RecordSource
	mu    sync.Mutex
	cache map[string][]entity.TripRecord
}

// NewCachedSource envolve uma fonte com cache por cidade.
func NewCachedSource(next repository.RecordSource) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: make(map[string][]entity.TripRecord),
	}
}

// Load retorna os registros do cache ou delega para a fonte encapsulada. Erros não são guardados.
func (c *CachedSource) Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error) {
	c.mu.Lock()
	if records, ok := c.cache[city.Name]; ok {
		c.mu.Unlock()
		return records, nil
	}
	c.mu.Unlock()

	records, err := c.next.Load(ctx, city)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[city.Name] = records
	c.mu.Unlock()

	return records, nil
}

// Describe delega para a fonte encapsulada.
func (c *CachedSource) Describe(ctx context.Context, city entity.City) (string, error) {
	return describe(ctx, c.next, city)
}
