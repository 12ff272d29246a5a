package tree

import (
	"sort"
	"strings"
)

// Heading starts every rendered structure
const Heading = "Directory Structure:"

type node struct {
	name     string
	children map[string]*node
}

func (n *node) child(name string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[name]
	if !ok {
		c = &node{name: name}
		n.children[name] = c
	}
	return c
}

func (n *node) isDir() bool {
	return n.children != nil
}

// sorted returns directories first, then files, each alphabetically
func (n *node) sorted() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].isDir() != out[j].isDir() {
			return out[i].isDir()
		}
		return out[i].name < out[j].name
	})
	return out
}

// Render draws file paths as a tree. Directories are inferred from the
// paths and shown with a trailing slash.
func Render(paths []string) string {
	root := &node{}
	for _, p := range paths {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		n := root
		for _, part := range strings.Split(p, "/") {
			n = n.child(part)
		}
	}

	var b strings.Builder
	b.WriteString(Heading)
	b.WriteString("\n\n.\n")
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, n *node, indent string) {
	children := n.sorted()
	for i, c := range children {
		last := i == len(children)-1

		connector, nextIndent := "├── ", indent+"│   "
		if last {
			connector, nextIndent = "└── ", indent+"    "
		}

		b.WriteString(indent)
		b.WriteString(connector)
		b.WriteString(c.name)
		if c.isDir() {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if c.isDir() {
			renderChildren(b, c, nextIndent)
		}
	}
}
