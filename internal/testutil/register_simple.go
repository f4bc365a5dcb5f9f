package testutil

import (
	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
)

// SimpleModule is a test helper that registers one fixed plugin under Name.
// Settings are decoded onto the plugin when it is a struct pointer.
type SimpleModule struct {
	Name   string
	Plugin app.Plugin
}

// Register implements the catalog.Module interface.
func (m *SimpleModule) Register(c *catalog.Catalog) {
	c.Register(m.Name, func(decode catalog.Decoder) (app.Plugin, error) {
		if err := decode(m.Plugin); err != nil {
			return nil, err
		}
		return m.Plugin, nil
	})
}
