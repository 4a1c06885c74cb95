package order

import (
	"go.uber.org/zap"

	"tecelar/internal/backend"
	"tecelar/internal/config"
	"tecelar/internal/order/session"
)

// NewModule wires a backend client and an editing session for one order.
func NewModule(cfg *config.Config, logger *zap.Logger) (*backend.Client, *session.Session) {
	client := backend.New(cfg.Backend, logger)
	return client, session.New(client, logger)
}
