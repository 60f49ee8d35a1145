package main

import (
	"os"

	"github.com/vuuvv/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML build manifest: the list of dialect files to
// compile together and the compile options to use. Example:
//
//	dialects:
//	  - common.xml
//	  - custom/my_dialect.xml
//	legacy_enum_counter: false
//	descriptions: true
type Manifest struct {
	Dialects          []string `yaml:"dialects"`
	LegacyEnumCounter bool     `yaml:"legacy_enum_counter"`
	Descriptions      bool     `yaml:"descriptions"`
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(m.Dialects) == 0 {
		return nil, errors.Errorf("manifest %s: dialects list is empty", path)
	}
	return &m, nil
}
