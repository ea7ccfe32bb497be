package fstest

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var standardFixture []byte

// Node is one item of a Fixture. Exactly one of Dir, Target, or Data
// describes it: a directory, a symbolic link to Target, or a file holding Data.
type Node struct {
	Path   string
	Dir    bool
	Data   []byte
	Target string
	Mode   fs.FileMode
}

// IsSymlink reports whether the node is a symbolic link.
func (n Node) IsSymlink() bool {
	return n.Target != ""
}

// Fixture is a tree a builder materializes before the suite inspects it.
// Paths are absolute and slash-separated; parents precede children.
type Fixture struct {
	Nodes []Node
}

// Files returns the regular file nodes.
func (f Fixture) Files() []Node {
	return f.filter(func(n Node) bool { return !n.Dir && !n.IsSymlink() })
}

// Dirs returns the directory nodes.
func (f Fixture) Dirs() []Node {
	return f.filter(func(n Node) bool { return n.Dir })
}

// Symlinks returns the symbolic link nodes.
func (f Fixture) Symlinks() []Node {
	return f.filter(func(n Node) bool { return n.IsSymlink() })
}

// WithoutSymlinks returns a copy of f with the link nodes removed, for
// backends that cannot store links.
func (f Fixture) WithoutSymlinks() Fixture {
	return Fixture{Nodes: f.filter(func(n Node) bool { return !n.IsSymlink() })}
}

// Paths returns every node path in sorted order.
func (f Fixture) Paths() []string {
	out := make([]string, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		out = append(out, n.Path)
	}
	sort.Strings(out)
	return out
}

func (f Fixture) filter(keep func(Node) bool) []Node {
	var out []Node
	for _, n := range f.Nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// StandardFixture returns the tree the suite checks against. It has nested
// directories, hidden entries, a file without an extension, a two-hop link
// chain ending at a directory, a link to a file, and a dangling link.
func StandardFixture() Fixture {
	fx, err := ParseFixture(standardFixture)
	if err != nil {
		panic(fmt.Sprintf("fstest: embedded fixture: %v", err))
	}
	return fx
}

// LoadFixture reads a YAML fixture from r. See ParseFixture for the format.
func LoadFixture(r io.Reader) (Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// yamlNode is the on-disk form of a Node.
type yamlNode struct {
	Path   string `yaml:"path"`
	Dir    bool   `yaml:"dir"`
	Data   string `yaml:"data"`
	Target string `yaml:"target"`
	Mode   uint32 `yaml:"mode"`
}

// ParseFixture decodes a YAML sequence of nodes, each a mapping with "path"
// and one of "dir: true", "target", or "data". "mode" is optional. Paths must
// be absolute, unique, and listed after their parent directory.
func ParseFixture(data []byte) (Fixture, error) {
	var raw []yamlNode
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}

	dirs := map[string]bool{"/": true}
	paths := map[string]bool{}
	fx := Fixture{Nodes: make([]Node, 0, len(raw))}
	for i, n := range raw {
		p := path.Clean(n.Path)
		switch {
		case !path.IsAbs(n.Path) || p == "/":
			return Fixture{}, fmt.Errorf("node %d: path %q must be absolute and below /", i, n.Path)
		case paths[p]:
			return Fixture{}, fmt.Errorf("node %d: duplicate path %s", i, p)
		case !dirs[path.Dir(p)]:
			return Fixture{}, fmt.Errorf("node %d: parent of %s is not a directory declared before it", i, p)
		case n.Dir && (n.Target != "" || n.Data != ""):
			return Fixture{}, fmt.Errorf("node %d: directory %s cannot have data or a target", i, p)
		case n.Target != "" && n.Data != "":
			return Fixture{}, fmt.Errorf("node %d: link %s cannot have data", i, p)
		}
		paths[p] = true
		dirs[p] = n.Dir

		fx.Nodes = append(fx.Nodes, Node{
			Path:   p,
			Dir:    n.Dir,
			Data:   []byte(n.Data),
			Target: n.Target,
			Mode:   fs.FileMode(n.Mode) & fs.ModePerm,
		})
	}
	return fx, nil
}
