// Package puppet loads the types of an environment and compiles catalogs for its
// nodes using the settings of a compiler.Settings.
package puppet

import (
	"context"
	"os"

	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/compiler"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/loader"
	"github.com/lyraproj/puppet-catalog/resource"

	// Ensure that all functions are loaded
	_ "github.com/lyraproj/puppet-catalog/functions"
)

// Load creates a type collection for the environment of the settings and loads
// the modules of the module path followed by the site manifest.
func Load(ctx context.Context, settings *compiler.Settings, logger eval.Logger) (*resource.TypeCollection, error) {
	tc := resource.NewTypeCollection(settings.Environment)
	l := loader.New(tc, settings.FreezeMain, logger)
	if len(settings.ModulePath) > 0 {
		if err := l.LoadModules(ctx, settings.ModulePath); err != nil {
			return nil, err
		}
	}
	if settings.Manifest != `` {
		if err := l.LoadManifest(settings.Manifest); err != nil {
			return nil, err
		}
	}
	return tc, nil
}

// Compile loads the types described by the settings and compiles one catalog for
// each node. The local host name is used when no nodes are given.
func Compile(ctx context.Context, settings *compiler.Settings, logger eval.Logger) ([]*catalog.Catalog, error) {
	tc, err := Load(ctx, settings, logger)
	if err != nil {
		return nil, err
	}
	nodes := settings.Nodes
	if len(nodes) == 0 {
		host, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		nodes = []string{host}
	}
	return compiler.CompileAll(ctx, tc, nodes, settings, logger)
}
