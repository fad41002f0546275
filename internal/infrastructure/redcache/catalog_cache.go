// Package redcache implementa el caché de catálogo sobre Redis.
// El caché es fail-open: cualquier error de Redis se trata como miss y
// los listados siguen funcionando contra la base de datos.
package redcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
	"github.com/ksalazar-dev/salon-api/pkg/config"
	"github.com/ksalazar-dev/salon-api/pkg/logger"
)

var _ usecase.CatalogCache = (*CatalogCache)(nil)

const servicesKey = "catalog:services:v1"

// CatalogCache cachea el primer listado de servicios del catálogo en Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New construye el caché con un cliente Redis ya configurado.
func New(client *redis.Client, cfg config.RedisConfig, log *logger.Logger) *CatalogCache {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl, log: log.Named("catalog-cache")}
}

// NewClient crea el cliente Redis desde la configuración. Devuelve nil si
// no hay Addr configurado (caché deshabilitado).
func NewClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// GetServices devuelve el listado cacheado y true, o false si hay miss o error.
func (c *CatalogCache) GetServices(ctx context.Context) ([]dto.ServiceResponse, bool) {
	raw, err := c.client.Get(ctx, servicesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("catalog cache get falló, se consulta DB")
		}
		return nil, false
	}
	var items []dto.ServiceResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache corrupto, se invalida")
		c.Invalidate(ctx)
		return nil, false
	}
	return items, true
}

// SetServices guarda el listado con TTL. Errores solo se registran.
func (c *CatalogCache) SetServices(ctx context.Context, items []dto.ServiceResponse) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, servicesKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache set falló")
	}
}

// Invalidate borra la entrada cacheada (tras crear/actualizar/borrar servicios).
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, servicesKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidate falló")
	}
}
