// Package consumer contains interface of blocks consumer.
package consumer

import (
	"context"

	"github.com/tipnet/midas/internal/health"
)

// Consumer consumes contract events and projects them into the storage.
type Consumer interface {
	health.Pinger

	Run(ctx context.Context) error
}
