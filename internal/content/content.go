// Package content loads the showcase's slides, pricing plans and tool
// catalog from YAML. The built-in catalog is embedded in the binary.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aishowcase/internal/carousel"
)

//go:embed showcase.yaml
var builtin []byte

// ErrInvalid wraps content validation failures.
var ErrInvalid = errors.New("content: invalid")

// Showcase is the full page content.
type Showcase struct {
	Hero  Hero   `yaml:"hero"`
	Plans []Plan `yaml:"plans"`
	Tools []Tool `yaml:"tools"`
}

// Hero is the home page carousel.
type Hero struct {
	Label  string  `yaml:"label"`
	Slides []Slide `yaml:"slides"`
}

// Slide is one hero slide.
type Slide struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       Image  `yaml:"image"`
}

// Image is a slide's media reference.
type Image struct {
	Src    string `yaml:"src"`
	Alt    string `yaml:"alt"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Plan is one pricing tab.
type Plan struct {
	Value    string   `yaml:"value"`
	Label    string   `yaml:"label"`
	Price    string   `yaml:"price"`
	Lazy     bool     `yaml:"lazy"`
	Features []string `yaml:"features"`
}

// Tool is one catalog entry.
type Tool struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Summary  string `yaml:"summary"`
	Details  string `yaml:"details"`
}

// Builtin returns the embedded showcase.
func Builtin() (*Showcase, error) {
	return Parse(builtin)
}

// Load reads a showcase file, or the embedded one when path is empty.
func Load(path string) (*Showcase, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates showcase YAML. Unknown fields are rejected.
func Parse(data []byte) (*Showcase, error) {
	var s Showcase
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that ids are present and unique within each list.
func (s *Showcase) Validate() error {
	if err := unique("slide", len(s.Hero.Slides), func(i int) string { return s.Hero.Slides[i].ID }); err != nil {
		return err
	}
	if err := unique("plan", len(s.Plans), func(i int) string { return s.Plans[i].Value }); err != nil {
		return err
	}
	return unique("tool", len(s.Tools), func(i int) string { return s.Tools[i].ID })
}

func unique(kind string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			return fmt.Errorf("%w: %s %d has no id", ErrInvalid, kind, i)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalid, kind, v)
		}
		seen[v] = true
	}
	return nil
}

// CarouselSlides converts the hero slides for the carousel widget.
func (s *Showcase) CarouselSlides() []carousel.Slide {
	out := make([]carousel.Slide, len(s.Hero.Slides))
	for i, sl := range s.Hero.Slides {
		out[i] = carousel.Slide{
			ID:          sl.ID,
			Title:       sl.Title,
			Description: sl.Description,
			Media: carousel.ImageRef{
				Src:    sl.Image.Src,
				Alt:    sl.Image.Alt,
				Width:  sl.Image.Width,
				Height: sl.Image.Height,
			},
		}
	}
	return out
}

// Tool returns the catalog entry with id.
func (s *Showcase) Tool(id string) (Tool, bool) {
	for _, t := range s.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}
