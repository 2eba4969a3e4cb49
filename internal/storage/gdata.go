package storage

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/quasilyte/gdata/v2"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// GData keeps progress in the platform's per-user application data
// directory. Each profile is a gdata object and each key one of its props.
type GData struct {
	manager *gdata.Manager
}

// OpenGData opens the save-data directory of appName.
func OpenGData(appName string) (*GData, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open save data for %s: %w", appName, err)
	}
	return &GData{manager: m}, nil
}

// Profile returns a backend scoped to one player.
func (g *GData) Profile(name string) progress.Backend {
	return &gdataProfile{manager: g.manager, name: objectKey(name)}
}

// objectKey maps a profile name to a gdata object key. gdata objects are
// directories, so the name is hex encoded to keep separators and ".."
// out of the path.
func objectKey(name string) string {
	return "profile_" + hex.EncodeToString([]byte(name))
}

// Close is a no-op; gdata writes every prop immediately.
func (g *GData) Close() error { return nil }

type gdataProfile struct {
	manager *gdata.Manager
	name    string
}

func (p *gdataProfile) Get(_ context.Context, key string) (string, bool, error) {
	if !p.manager.ObjectPropExists(p.name, key) {
		return "", false, nil
	}
	data, err := p.manager.LoadObjectProp(p.name, key)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return string(data), true, nil
}

func (p *gdataProfile) Set(_ context.Context, key, value string) error {
	if err := p.manager.SaveObjectProp(p.name, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

func (p *gdataProfile) Delete(_ context.Context, key string) error {
	if !p.manager.ObjectPropExists(p.name, key) {
		return nil
	}
	if err := p.manager.DeleteObjectProp(p.name, key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}
