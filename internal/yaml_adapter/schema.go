package yaml_adapter

import "gopkg.in/yaml.v3"

// fileRoot is the top-level layout of a YAML manifest. Unknown keys are
// rejected by the decoder.
type fileRoot struct {
	App     *appDoc      `yaml:"app"`
	Plugins []*pluginDoc `yaml:"plugins"`
}

type appDoc struct {
	Ticks      *int `yaml:"ticks"`
	IntervalMS *int `yaml:"interval_ms"`
}

type pluginDoc struct {
	Name     string    `yaml:"name"`
	Settings yaml.Node `yaml:"settings"`
}
