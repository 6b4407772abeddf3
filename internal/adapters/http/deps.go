package http

import (
	"github.com/nats-io/nats.go"

	"github.com/mapadf/pontos/internal/adapters/postgres"
	"github.com/mapadf/pontos/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog *usecases.CatalogService
	DB      *postgres.DB
	NATS    *nats.Conn
}
