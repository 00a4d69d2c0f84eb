package compiler

import (
	"context"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
	"golang.org/x/sync/errgroup"
)

// CompileAll compiles the catalogs of the given nodes in parallel. Each compilation uses
// its own snapshot of the registry. The catalogs are returned in the order of the nodes.
// The first failing compilation cancels the compilations that have not yet started.
func CompileAll(ctx context.Context, registry *resource.TypeCollection, nodes []string, settings *Settings, logger eval.Logger) ([]*catalog.Catalog, error) {
	catalogs := make([]*catalog.Catalog, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		i, node := i, node
		snapshot := registry.Snapshot()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cat, err := New(snapshot, node, settings, logger).Compile()
			if err != nil {
				if _, ok := err.(issue.Reported); ok {
					return err
				}
				return eval.Error(COMPILE_NODE_FAILED, issue.H{`node`: node, `detail`: err.Error()}, nil)
			}
			catalogs[i] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalogs, nil
}
