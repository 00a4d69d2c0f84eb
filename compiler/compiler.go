// Package compiler compiles the catalog of a node from the types in a
// resource.TypeCollection.
package compiler

import (
	"sort"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/impl"
	"github.com/lyraproj/puppet-catalog/resource"
)

// Compiler holds the state of one compilation. It is not safe for concurrent use.
type Compiler struct {
	registry    *resource.TypeCollection
	settings    *Settings
	nodeName    string
	logger      eval.Logger
	catalog     *catalog.Catalog
	topScope    *impl.BasicScope
	nodeScope   eval.Scope
	classScopes map[string]eval.Scope
}

// New creates a compiler for the given node. The registry must not be modified while
// the compiler is in use.
func New(registry *resource.TypeCollection, nodeName string, settings *Settings, logger eval.Logger) *Compiler {
	if settings == nil {
		settings = DefaultSettings()
	}
	if logger == nil {
		logger = eval.NewStdLogger()
	}
	c := &Compiler{
		registry:    registry,
		settings:    settings,
		nodeName:    nodeName,
		logger:      logger,
		catalog:     catalog.NewCatalog(nodeName, registry.Environment()),
		classScopes: make(map[string]eval.Scope)}
	c.topScope = impl.NewTopScope(c)
	return c
}

func (c *Compiler) Catalog() eval.Catalog {
	return c.catalog
}

func (c *Compiler) ClassScope(key string) (eval.Scope, bool) {
	s, ok := c.classScopes[key]
	return s, ok
}

func (c *Compiler) SetClassScope(key string, scope eval.Scope) {
	c.classScopes[key] = scope
}

func (c *Compiler) EvaluateResource(r eval.Resource) error {
	return resource.Evaluate(r, c.registry)
}

func (c *Compiler) NodeName() string {
	return c.nodeName
}

func (c *Compiler) StrictVariables() bool {
	return c.settings.StrictVariables
}

func (c *Compiler) Logger() eval.Logger {
	return c.logger
}

func (c *Compiler) Registry() resource.Registry {
	return c.registry
}

// TopScope returns the scope where the main class is evaluated.
func (c *Compiler) TopScope() eval.Scope {
	return c.topScope
}

// Compile evaluates the main class, the node definition that matches the node name,
// the classes from the settings and finally all resources of defined types that
// have been declared. It returns the resulting catalog.
func (c *Compiler) Compile() (*catalog.Catalog, error) {
	c.setFacts()
	if err := c.evaluateMain(); err != nil {
		return nil, err
	}
	if err := c.evaluateNode(); err != nil {
		return nil, err
	}
	if err := c.evaluateNodeClasses(); err != nil {
		return nil, err
	}
	if err := c.evaluateGenerators(); err != nil {
		return nil, err
	}
	c.logger.Logf(eval.INFO, `Compiled catalog for %s in environment %s with %d resources`,
		c.nodeName, c.registry.Environment(), len(c.catalog.Resources()))
	return c.catalog, nil
}

func (c *Compiler) setFacts() {
	facts := make(map[string]eval.Value, len(c.settings.Facts)+1)
	names := make([]string, 0, len(c.settings.Facts))
	for k := range c.settings.Facts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := c.settings.Facts[k]
		facts[k] = v
		c.topScope.Set(k, v)
	}
	if _, ok := facts[`hostname`]; !ok {
		facts[`hostname`] = c.nodeName
	}
	c.topScope.Set(`facts`, facts)
	c.topScope.Set(`environment`, c.registry.Environment())
	c.topScope.Set(`clientcert`, c.nodeName)
}

func (c *Compiler) evaluateMain() error {
	main, ok := c.registry.Hostclass(``)
	if !ok {
		var err error
		if main, err = resource.NewType(resource.Hostclass, ``, &resource.Options{Collection: c.registry}); err != nil {
			return err
		}
	}
	mr := catalog.NewResource(`Class`, eval.MainTitle, c.topScope, main.Location())
	c.topScope.SetResource(mr)
	if err := c.catalog.AddResource(mr); err != nil {
		return err
	}
	mr.MarkEvaluated()
	return main.EvaluateCode(mr)
}

func (c *Compiler) evaluateNode() error {
	if !c.registry.HasNodes() {
		c.nodeScope = c.topScope
		return nil
	}
	node, ok := c.registry.FindNode(c.nodeName)
	if !ok {
		return eval.Error(COMPILE_NO_NODE, issue.H{`node`: c.nodeName}, nil)
	}
	if _, err := node.EnsureInCatalog(c.topScope, nil); err != nil {
		return err
	}
	if ns, ok := c.ClassScope(node.Key()); ok {
		c.nodeScope = ns
	} else {
		c.nodeScope = c.topScope
	}
	return nil
}

func (c *Compiler) evaluateNodeClasses() error {
	for _, name := range c.settings.Classes {
		cls, ok := c.registry.Lookup(resource.Hostclass, name)
		if !ok {
			return eval.Error(COMPILE_UNKNOWN_CLASS, issue.H{`name`: name, `node`: c.nodeName}, nil)
		}
		if _, err := cls.EnsureInCatalog(c.nodeScope, nil); err != nil {
			return err
		}
	}
	return nil
}

// evaluateGenerators evaluates resources of defined types until no unevaluated resources
// remain. Evaluating a resource may declare new resources.
func (c *Compiler) evaluateGenerators() error {
	for {
		pending := c.catalog.Unevaluated()
		if len(pending) == 0 {
			return nil
		}
		for _, r := range pending {
			if err := r.Evaluate(); err != nil {
				return err
			}
		}
	}
}
