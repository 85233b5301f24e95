package cache

import (
	"sync"
	"text/template"

	"github.com/modelgen/modelgen/core/logger"
)

// TemplateCache holds parsed templates keyed by their source path, so each
// template file is read and parsed once per run even when many models share
// it. Dev mode invalidates entries when files change.
type TemplateCache struct {
	entries map[string]*template.Template
	metrics *Metrics
	mutex   sync.RWMutex
}

type Metrics struct {
	Hits          int64
	Misses        int64
	Invalidations int64
}

var (
	globalCache *TemplateCache
	cacheOnce   sync.Once
)

func GetCache() *TemplateCache {
	cacheOnce.Do(func() {
		globalCache = NewTemplateCache()
	})
	return globalCache
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		entries: make(map[string]*template.Template),
		metrics: &Metrics{},
	}
}

func (tc *TemplateCache) Get(key string) (*template.Template, bool) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tmpl, exists := tc.entries[key]
	if !exists {
		tc.metrics.Misses++
		logger.Debug("Template cache miss for %s", key)
		return nil, false
	}
	tc.metrics.Hits++
	logger.Debug("Template cache hit for %s", key)
	return tmpl, true
}

func (tc *TemplateCache) Set(key string, tmpl *template.Template) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	tc.entries[key] = tmpl
	logger.Debug("Cached parsed template for %s", key)
}

func (tc *TemplateCache) Invalidate(key string) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	if _, exists := tc.entries[key]; exists {
		delete(tc.entries, key)
		tc.metrics.Invalidations++
		logger.Debug("Invalidated template cache entry for %s", key)
	}
}

func (tc *TemplateCache) Clear() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	count := len(tc.entries)
	tc.entries = make(map[string]*template.Template)
	tc.metrics.Invalidations += int64(count)
	logger.Debug("Cleared template cache, invalidated %d entries", count)
}

func (tc *TemplateCache) Stats() Metrics {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return *tc.metrics
}

func (tc *TemplateCache) LogStats() {
	stats := tc.Stats()
	logger.Debug("Template cache stats: hits=%d misses=%d invalidations=%d",
		stats.Hits, stats.Misses, stats.Invalidations)
}
