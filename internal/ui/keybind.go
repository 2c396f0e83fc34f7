package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps single keys to commands, optionally scoped to pages.
// Keys use tea.KeyMsg.String() notation: "q", "ctrl+c", "1".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	pageFilter   map[string][]Page // nil/empty = applies to all pages
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		pageFilter:   make(map[string][]Page),
	}
}

// Bind registers a key to a command on every page.
// Overwrites any existing binding for the key.
func (r *KeybindRegistry) Bind(k string, cmd tea.Cmd) {
	r.BindWithDesc(k, cmd, "")
}

// BindWithDesc registers a key with a description for the help bar.
func (r *KeybindRegistry) BindWithDesc(k string, cmd tea.Cmd, desc string) {
	r.BindWithDescForPage(k, cmd, desc, nil)
}

// BindWithDescForPage registers a key that only applies on the given pages.
// If pages is nil or empty, the binding applies everywhere.
func (r *KeybindRegistry) BindWithDescForPage(k string, cmd tea.Cmd, desc string, pages []Page) {
	r.bindings[k] = cmd
	if desc != "" {
		r.descriptions[k] = desc
	} else {
		delete(r.descriptions, k)
	}
	if len(pages) > 0 {
		r.pageFilter[k] = pages
	} else {
		delete(r.pageFilter, k)
	}
}

// Lookup returns the command bound to k on page, or nil.
func (r *KeybindRegistry) Lookup(k string, page Page) tea.Cmd {
	cmd, ok := r.bindings[k]
	if !ok || !r.appliesToPage(k, page) {
		return nil
	}
	return cmd
}

// Hints returns the described bindings active on page, sorted by key.
func (r *KeybindRegistry) Hints(page Page) []key.Binding {
	keys := make([]string, 0, len(r.descriptions))
	for k := range r.descriptions {
		if r.bindings[k] != nil && r.appliesToPage(k, page) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, r.descriptions[k])))
	}
	return out
}

func (r *KeybindRegistry) appliesToPage(k string, page Page) bool {
	pages, ok := r.pageFilter[k]
	if !ok || len(pages) == 0 {
		return true
	}
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}

// KeyMap implements help.KeyMap over the registry for one page, followed
// by the widget navigation keys.
type KeyMap struct {
	registry *KeybindRegistry
	page     Page
	widget   []key.Binding
}

// NewKeyMap creates a KeyMap for the registry on page. widget bindings are
// appended after the page commands.
func NewKeyMap(registry *KeybindRegistry, page Page, widget []key.Binding) help.KeyMap {
	return &KeyMap{registry: registry, page: page, widget: widget}
}

// ShortHelp implements help.KeyMap.
func (km *KeyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	if km.registry != nil {
		out = append(out, km.registry.Hints(km.page)...)
	}
	return append(out, km.widget...)
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
