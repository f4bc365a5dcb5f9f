package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a manifest file may contain. Any
// other block or attribute is a decode error.
type fileRoot struct {
	App     *AppBlock      `hcl:"app,block"`
	Plugins []*PluginBlock `hcl:"plugin,block"`
}

// AppBlock is the HCL schema for the `app` block.
type AppBlock struct {
	Ticks      *int `hcl:"ticks,optional"`
	IntervalMS *int `hcl:"interval_ms,optional"`
}

// PluginBlock is the HCL schema for a `plugin "<name>"` block.
type PluginBlock struct {
	Name     string         `hcl:"name,label"`
	Settings hcl.Expression `hcl:"settings,optional"`
}
