//go:build !protogen

package eventtypes

import "context"

// Without generated protos the gRPC fallback is unavailable; the cache
// provider is the only source. Regenerate with the protogen build tag to
// enable direct calendar-service lookups.
func NewGRPCProvider(ctx context.Context, addr string) (Provider, error) {
	return nil, nil
}
