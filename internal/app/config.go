package app

import "errors"

// Config holds everything an App needs to start.
type Config struct {
	CatalogPath string // root of the manifest tree to scan
	Namespace   string // logical name of the tree; defaults to the path's base name
	Library     string // library tag for scanned entries; defaults to the namespace
	Label       string // label tag for scanned entries

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CatalogPath == "" {
		return nil, errors.New("CatalogPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
