package loader

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-parser/parser"
	"github.com/lyraproj/semver/semver"
	"golang.org/x/sync/errgroup"
)

// MetadataFile is the name of the file that describes a module.
const MetadataFile = `metadata.json`

type (
	// Module is a directory containing a manifests directory and optionally a
	// metadata.json file.
	Module struct {
		Name         string
		Path         string
		Version      semver.Version
		Dependencies []*Dependency
	}

	// Dependency is a module that a module requires, in a given version range.
	Dependency struct {
		Name        string
		Requirement string
		Range       semver.VersionRange
	}

	metadata struct {
		Name         string `json:"name"`
		Version      string `json:"version"`
		Dependencies []struct {
			Name               string `json:"name"`
			VersionRequirement string `json:"version_requirement"`
		} `json:"dependencies"`
	}

	parsedFile struct {
		module  *Module
		program *parser.Program
	}
)

// Modules returns the modules that have been loaded, in load order.
func (l *Loader) Modules() []*Module {
	return l.modules
}

// LoadModules loads all modules found in the directories of the module path. A
// module found in an earlier directory hides modules with the same name in later
// directories. Manifests are parsed concurrently but their types are registered
// in module path order.
func (l *Loader) LoadModules(ctx context.Context, modulePath []string) error {
	var modules []*Module
	var files []string
	for _, dir := range modulePath {
		found, err := findModules(dir)
		if err != nil {
			return err
		}
		for _, m := range found {
			if l.module(m.Name) != nil || containsModule(modules, m.Name) {
				l.logger.Logf(eval.DEBUG, `Module %s at %s is hidden by an earlier module`, m.Name, m.Path)
				continue
			}
			modules = append(modules, m)
			mdir := filepath.Join(m.Path, `manifests`)
			if _, err := os.Stat(mdir); err != nil {
				continue
			}
			mf, err := manifestFiles(mdir)
			if err != nil {
				return err
			}
			files = append(files, mf...)
		}
	}

	parsed := make([]parsedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := readFile(file)
			if err != nil {
				return err
			}
			program, err := parse(file, content)
			if err != nil {
				return err
			}
			parsed[i] = parsedFile{moduleOf(modules, file), program}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, pf := range parsed {
		name := ``
		if pf.module != nil {
			name = pf.module.Name
		}
		if err := l.define(pf.program, name); err != nil {
			return err
		}
	}
	l.modules = append(l.modules, modules...)
	l.checkDependencies()
	return nil
}

func (l *Loader) module(name string) *Module {
	for _, m := range l.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// checkDependencies logs a warning for each dependency that is missing or has a
// version outside of the required range.
func (l *Loader) checkDependencies() {
	for _, m := range l.modules {
		for _, d := range m.Dependencies {
			dm := l.module(d.Name)
			if dm == nil {
				l.logger.LogIssue(issue.NewReported(LOAD_MISSING_DEPENDENCY, issue.SEVERITY_WARNING,
					issue.H{`module`: m.Name, `dependency`: d.Name}, nil))
				continue
			}
			if dm.Version != nil && d.Requirement != `` && !d.Range.Includes(dm.Version) {
				l.logger.LogIssue(issue.NewReported(LOAD_UNSATISFIED_DEPENDENCY, issue.SEVERITY_WARNING,
					issue.H{`module`: m.Name, `dependency`: d.Name, `range`: d.Requirement, `version`: dm.Version.String()}, nil))
			}
		}
	}
}

// findModules returns the modules in the given directory sorted by name.
func findModules(dir string) ([]*Module, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eval.Error(LOAD_UNABLE_TO_READ_FILE, issue.H{`path`: dir, `detail`: err.Error()}, nil)
	}
	var modules []*Module
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), `.`) {
			continue
		}
		m, err := ReadModule(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// ReadModule reads the metadata of the module in the given directory. The name
// of the module is the directory name when there is no metadata.
func ReadModule(path string) (*Module, error) {
	m := &Module{Name: strings.ToLower(filepath.Base(path)), Path: path}
	mdPath := filepath.Join(path, MetadataFile)
	content, err := ioutil.ReadFile(mdPath)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, eval.Error(LOAD_INVALID_METADATA, issue.H{`path`: mdPath, `detail`: err.Error()}, nil)
	}

	var md metadata
	if err = json.Unmarshal(content, &md); err != nil {
		return nil, eval.Error(LOAD_INVALID_METADATA, issue.H{`path`: mdPath, `detail`: err.Error()}, nil)
	}
	if md.Name != `` {
		m.Name = shortName(md.Name)
	}
	if md.Version != `` {
		if m.Version, err = semver.ParseVersion(md.Version); err != nil {
			return nil, eval.Error(LOAD_INVALID_METADATA, issue.H{`path`: mdPath, `detail`: err.Error()}, nil)
		}
	}
	for _, d := range md.Dependencies {
		dep := &Dependency{Name: shortName(d.Name), Requirement: d.VersionRequirement}
		if d.VersionRequirement != `` {
			if dep.Range, err = semver.ParseVersionRange(d.VersionRequirement); err != nil {
				return nil, eval.Error(LOAD_INVALID_METADATA, issue.H{`path`: mdPath, `detail`: err.Error()}, nil)
			}
		}
		m.Dependencies = append(m.Dependencies, dep)
	}
	return m, nil
}

// shortName strips the author from a full module name such as `puppetlabs-stdlib`
// or `puppetlabs/stdlib`.
func shortName(name string) string {
	if idx := strings.LastIndexAny(name, `-/`); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}

func containsModule(modules []*Module, name string) bool {
	for _, m := range modules {
		if m.Name == name {
			return true
		}
	}
	return false
}

func moduleOf(modules []*Module, file string) *Module {
	for _, m := range modules {
		if strings.HasPrefix(file, m.Path+string(filepath.Separator)) {
			return m
		}
	}
	return nil
}
