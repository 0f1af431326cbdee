// Package yaml loads infradocs configuration files.
//
// A file sets flag values by long flag name and overrides per-package
// sources:
//
//	addr: ":8080"
//	doc-ttl: 5m
//	sources:
//	  ai-infra:
//	    branch: develop
//	    docs: documentation
package yaml

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/aliikhatami94/infradocs"
	"gopkg.in/yaml.v3"
)

// Ensure Config implements kong.Resolver at compile time.
var _ kong.Resolver = (*Config)(nil)

// sourcesKey is the top-level key holding per-package overrides.
const sourcesKey = "sources"

// Config is a parsed configuration file.
type Config struct {
	values  map[string]any
	sources map[infradocs.Package]infradocs.Source
}

// Load parses a configuration document.
func Load(r io.Reader) (*Config, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, infradocs.Errorf(infradocs.EINVALID, "invalid config: %v", err)
	}

	c := &Config{
		values:  make(map[string]any),
		sources: make(map[infradocs.Package]infradocs.Source),
	}
	for key, node := range raw {
		if key == sourcesKey {
			if err := c.decodeSources(&node); err != nil {
				return nil, err
			}
			continue
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, infradocs.Errorf(infradocs.EINVALID, "invalid config key %q: %v", key, err)
		}
		c.values[key] = v
	}
	return c, nil
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func (c *Config) decodeSources(node *yaml.Node) error {
	var sources map[string]infradocs.Source
	if err := node.Decode(&sources); err != nil {
		return infradocs.Errorf(infradocs.EINVALID, "invalid sources: %v", err)
	}
	for name, src := range sources {
		p, err := infradocs.ParsePackage(name)
		if err != nil {
			return err
		}
		src.Package = p
		c.sources[p] = src
	}
	return nil
}

// Sources returns the per-package source overrides, for infradocs.NewCatalog.
func (c *Config) Sources() map[infradocs.Package]infradocs.Source {
	out := make(map[infradocs.Package]infradocs.Source, len(c.sources))
	for p, s := range c.sources {
		out[p] = s
	}
	return out
}

// Validate implements kong.Resolver.
func (c *Config) Validate(app *kong.Application) error {
	return nil
}

// Resolve implements kong.Resolver. Keys match long flag names, with
// underscores accepted in place of hyphens.
func (c *Config) Resolve(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := c.values[flag.Name]
	if !ok {
		v, ok = c.values[strings.ReplaceAll(flag.Name, "-", "_")]
	}
	if !ok || v == nil {
		return nil, nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return nil, fmt.Errorf("config key %q: expected a scalar value", flag.Name)
	}
	return fmt.Sprint(v), nil
}

// Loader is a kong.ConfigurationLoader. The most recently loaded Config is
// passed to onLoad so callers can read source overrides from the same file.
func Loader(onLoad func(*Config)) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		c, err := Load(r)
		if err != nil {
			return nil, err
		}
		if onLoad != nil {
			onLoad(c)
		}
		return c, nil
	}
}
