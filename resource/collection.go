package resource

import (
	"sort"
	"strings"

	"github.com/lyraproj/puppet-catalog/eval"
)

// Registry is what a Type uses to resolve the name of its parent.
type Registry interface {
	// Lookup finds a type of the given kind. Unqualified names are first
	// searched for in each of the given namespaces, innermost first.
	Lookup(kind Kind, name string, namespaces ...string) (*Type, bool)
}

// RegistryHolder is implemented by compilers that can provide the registry
// used during compilation.
type RegistryHolder interface {
	Registry() Registry
}

// RegistryOf returns the registry of the compiler of the given scope.
func RegistryOf(scope eval.Scope) (Registry, bool) {
	if scope == nil {
		return nil, false
	}
	if rh, ok := scope.Compiler().(RegistryHolder); ok {
		if r := rh.Registry(); r != nil {
			return r, true
		}
	}
	return nil, false
}

// TypeCollection holds all known resource types of one environment, in one
// map per kind keyed by canonical name.
type TypeCollection struct {
	environment string
	hostclasses map[string]*Type
	definitions map[string]*Type
	nodes       map[string]*Type

	// nodes in the order they were added, needed to match regexp named nodes
	nodeList []*Type
}

// NewTypeCollection creates an empty collection for the given environment.
func NewTypeCollection(environment string) *TypeCollection {
	return &TypeCollection{
		environment: environment,
		hostclasses: make(map[string]*Type),
		definitions: make(map[string]*Type),
		nodes:       make(map[string]*Type)}
}

func (tc *TypeCollection) Environment() string {
	return tc.environment
}

func (tc *TypeCollection) table(kind Kind) map[string]*Type {
	switch kind {
	case Hostclass:
		return tc.hostclasses
	case Definition:
		return tc.definitions
	case Node:
		return tc.nodes
	default:
		return nil
	}
}

// Add adds a type to the collection, replacing any type of the same kind and
// name, and makes the collection the registry of the type.
func (tc *TypeCollection) Add(t *Type) *Type {
	t.collection = tc
	m := tc.table(t.kind)
	if t.kind == Node {
		if old, ok := m[t.name]; ok {
			for i, n := range tc.nodeList {
				if n == old {
					tc.nodeList[i] = t
					break
				}
			}
		} else {
			tc.nodeList = append(tc.nodeList, t)
		}
	}
	m[t.name] = t
	return t
}

// AddOrMerge adds a type to the collection unless a hostclass with the same name
// exists. In that case the type is merged into the existing class which is then
// returned.
func (tc *TypeCollection) AddOrMerge(t *Type, freezeMain bool) (*Type, error) {
	if t.kind == Hostclass {
		if existing, ok := tc.hostclasses[t.name]; ok {
			if err := existing.Merge(t, freezeMain); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}
	return tc.Add(t), nil
}

func (tc *TypeCollection) find(kind Kind, name string) (*Type, bool) {
	if m := tc.table(kind); m != nil {
		t, ok := m[name]
		return t, ok
	}
	return nil, false
}

func (tc *TypeCollection) Hostclass(name string) (*Type, bool) {
	return tc.find(Hostclass, Normalize(name))
}

func (tc *TypeCollection) Definition(name string) (*Type, bool) {
	return tc.find(Definition, Normalize(name))
}

func (tc *TypeCollection) Node(name interface{}) (*Type, bool) {
	return tc.find(Node, Normalize(name))
}

// Lookup finds a type of the given kind. A name with a leading `::` is only
// looked up at top level. Other names are tried prefixed with each namespace
// and then with successively shorter prefixes of that namespace before the
// name itself is tried.
func (tc *TypeCollection) Lookup(kind Kind, name string, namespaces ...string) (*Type, bool) {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, `::`) {
		return tc.find(kind, name[2:])
	}
	if name != `` {
		for _, ns := range namespaces {
			for ns = Normalize(ns); ns != ``; {
				if t, ok := tc.find(kind, ns+`::`+name); ok {
					return t, true
				}
				idx := strings.LastIndex(ns, `::`)
				if idx < 0 {
					break
				}
				ns = ns[:idx]
			}
		}
	}
	return tc.find(kind, name)
}

// FindNode returns the node definition for the given host name. A node with the
// exact name is preferred. Regexp named nodes are then tried in the order they were
// added and last, the node named `default`.
func (tc *TypeCollection) FindNode(hostName string) (*Type, bool) {
	if t, ok := tc.nodes[Normalize(hostName)]; ok && !t.IsRegexNamed() {
		return t, true
	}
	for _, t := range tc.nodeList {
		if t.IsRegexNamed() {
			if _, ok := t.Match(hostName); ok {
				return t, true
			}
		}
	}
	return tc.find(Node, `default`)
}

// HasNodes returns true if the collection contains at least one node definition.
func (tc *TypeCollection) HasNodes() bool {
	return len(tc.nodeList) > 0
}

// Types returns the types of the given kind sorted by name.
func (tc *TypeCollection) Types(kind Kind) []*Type {
	m := tc.table(kind)
	result := make([]*Type, 0, len(m))
	for _, t := range m {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].name < result[j].name })
	return result
}

// Snapshot returns a copy of the collection where every type is copied with an
// unresolved parent. A snapshot can be used by one compilation while other
// compilations use other snapshots.
func (tc *TypeCollection) Snapshot() *TypeCollection {
	c := NewTypeCollection(tc.environment)
	for _, t := range tc.hostclasses {
		c.hostclasses[t.name] = t.clone(c)
	}
	for _, t := range tc.definitions {
		c.definitions[t.name] = t.clone(c)
	}
	for _, t := range tc.nodeList {
		nt := t.clone(c)
		c.nodes[t.name] = nt
		c.nodeList = append(c.nodeList, nt)
	}
	return c
}
