// Package mock provides test doubles for chatdown interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/chatdown"
)

// Interface compliance check.
var _ chatdown.Provider = (*Provider)(nil)

// Provider is a test double for chatdown.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req chatdown.Request) (chatdown.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req chatdown.Request) (chatdown.Stream, error) {
	return p.StreamFn(ctx, req)
}
