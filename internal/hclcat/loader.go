// Package hclcat loads HCL catalog manifests and translates them into the
// format-agnostic catalog model.
package hclcat

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kilnhq/kiln/internal/catalog"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader parses catalog manifest files. A single Loader may load many files;
// the underlying parser caches sources for diagnostics.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Classes []*classBlock `hcl:"class,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// classBlock is the HCL shape of a class declaration.
type classBlock struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Builder     string        `hcl:"builder"`
	Inputs      []*inputBlock `hcl:"input,block"`
}

// inputBlock is the HCL shape of a single input declaration.
type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// LoadFile parses and translates one manifest file into a catalog unit.
func (l *Loader) LoadFile(ctx context.Context, path string) (*catalog.Unit, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing catalog manifest.", "file", path)

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	unit := &catalog.Unit{Path: path}
	for _, block := range root.Classes {
		def, err := translateClass(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("class %q in %s: %w", block.Name, path, err)
		}
		unit.Classes = append(unit.Classes, def)
	}

	logger.Debug("Manifest loaded.", "file", path, "classes", len(unit.Classes))
	return unit, nil
}
