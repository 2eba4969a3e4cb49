package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// Backend kinds accepted by OpenProvider.
const (
	KindSQLite = "sqlite"
	KindGData  = "gdata"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// Kinds lists the supported backend kinds.
var Kinds = []string{KindSQLite, KindGData, KindRedis, KindMemory}

// Provider hands out per-player backends from one shared store.
type Provider interface {
	Profile(name string) progress.Backend
	Close() error
}

// Options selects and configures a provider.
type Options struct {
	Kind        string
	DBPath      string
	RedisAddr   string
	RedisPrefix string
	AppName     string
}

// OpenProvider opens the store named by opts.Kind.
func OpenProvider(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Kind {
	case KindSQLite, "":
		store, err := Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case KindGData:
		g, err := OpenGData(opts.AppName)
		if err != nil {
			return nil, err
		}
		return g, nil
	case KindRedis:
		r, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Kind)
	}
}

var (
	_ Provider = (*Store)(nil)
	_ Provider = (*GData)(nil)
	_ Provider = (*Redis)(nil)
	_ Provider = (*Memory)(nil)
)
