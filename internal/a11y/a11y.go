// Package a11y describes the accessibility surface the widgets expose:
// role/state attributes arranged as a node tree, and live-region
// announcements for assistive technology.
package a11y

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Role is an ARIA role name.
type Role string

const (
	RoleRegion   Role = "region"
	RoleGroup    Role = "group"
	RoleStatus   Role = "status"
	RoleButton   Role = "button"
	RoleTabList  Role = "tablist"
	RoleTab      Role = "tab"
	RoleTabPanel Role = "tabpanel"
	RoleDialog   Role = "dialog"
	RoleHeading  Role = "heading"
)

// Attribute names reproduced verbatim for behavioural parity with the web widgets.
const (
	AttrLabel           = "aria-label"
	AttrLabelledBy      = "aria-labelledby"
	AttrControls        = "aria-controls"
	AttrSelected        = "aria-selected"
	AttrCurrent         = "aria-current"
	AttrHidden          = "aria-hidden"
	AttrModal           = "aria-modal"
	AttrLive            = "aria-live"
	AttrAtomic          = "aria-atomic"
	AttrRoleDescription = "aria-roledescription"
	AttrOrientation     = "aria-orientation"
	AttrTabIndex        = "tabindex"
)

// Node is one element of an accessibility tree.
type Node struct {
	ID       string
	Role     Role
	Attrs    map[string]string
	Children []*Node
}

// NewNode creates a node with the given id and role.
func NewNode(id string, role Role) *Node {
	return &Node{ID: id, Role: role, Attrs: make(map[string]string)}
}

// Set sets an attribute and returns n for chaining.
func (n *Node) Set(name, value string) *Node {
	n.Attrs[name] = value
	return n
}

// Attr returns an attribute value ("" when unset).
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindRole returns every node in the tree with the given role.
func (n *Node) FindRole(role Role) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Role == role {
			out = append(out, c)
		}
	})
	return out
}

// FindID returns the node with the given id, or nil.
func (n *Node) FindID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found
}

// String renders the tree one node per line, attributes sorted.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	names := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Fprintf(b, "%s%s#%s", strings.Repeat("  ", depth), n.Role, n.ID)
	for _, k := range names {
		fmt.Fprintf(b, " %s=%q", k, n.Attrs[k])
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// Bool formats a boolean attribute value.
func Bool(v bool) string { return strconv.FormatBool(v) }

// TabIndex formats a tabindex attribute value.
func TabIndex(v int) string { return strconv.Itoa(v) }
