package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aishowcase/internal/carousel"
	"aishowcase/internal/input"
)

// CarouselView renders the hero carousel and forwards keys to it while it
// has focus.
type CarouselView struct {
	Carousel *carousel.Carousel
	Keys     input.KeyMap
	Width    int

	// dotsRow is the line of the last render holding the dots, or -1.
	dotsRow int
}

// Ensure CarouselView implements View.
var _ View = (*CarouselView)(nil)

// NewCarouselView wraps c.
func NewCarouselView(c *carousel.Carousel) *CarouselView {
	return &CarouselView{Carousel: c, Keys: input.DefaultKeyMap, Width: 72, dotsRow: -1}
}

// Init implements View.
func (v *CarouselView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *CarouselView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.Carousel.HandleKey(input.NewKeyEvent(v.Keys.FromKeyMsg(msg)))
	case tea.WindowSizeMsg:
		v.Width = min(msg.Width-4, 96)
	}
	return v, nil
}

// View implements View.
func (v *CarouselView) View() string {
	c := v.Carousel
	header := Styles.Title.Render(c.Label())
	slide, ok := c.Current()
	if !ok {
		v.dotsRow = -1
		return header + "\n" + Styles.Empty.Render("No slides to show.")
	}

	card := Styles.Card
	if c.Focused() {
		card = Styles.CardFocused
	}
	inner := max(v.Width-card.GetHorizontalFrameSize(), 10)
	body := lipgloss.JoinVertical(lipgloss.Left,
		Styles.Subtitle.Render(slide.Title),
		Styles.Normal.Width(inner).Render(slide.Description),
		Styles.Muted.Render(fmt.Sprintf("[image: %s]", slide.Media.Alt)),
	)

	out := lipgloss.JoinVertical(lipgloss.Left,
		header,
		card.Width(v.Width).Render(body),
		v.controls(),
	)
	v.dotsRow = lipgloss.Height(out) - 1
	return out
}

// dotsCol is where the first dot starts, after "‹ ".
const dotsCol = 2

// DotAt maps a cell of the last render, relative to its top-left corner, to
// the dot drawn there.
func (v *CarouselView) DotAt(x, y int) (int, bool) {
	if v.dotsRow < 0 || y != v.dotsRow || x < dotsCol || (x-dotsCol)%2 != 0 {
		return 0, false
	}
	i := (x - dotsCol) / 2
	if i >= v.Carousel.Len() {
		return 0, false
	}
	return i, true
}

func (v *CarouselView) controls() string {
	c := v.Carousel
	var dots []string
	for _, d := range c.Dots() {
		if d.Active {
			dots = append(dots, Styles.Selected.Render("●"))
		} else {
			dots = append(dots, Styles.Muted.Render("○"))
		}
	}

	state := "autoplay off"
	switch {
	case c.ReducedMotion():
		state = "autoplay off (reduced motion)"
	case c.Paused():
		state = "paused"
	case c.Autoplaying():
		state = "playing"
	}
	return fmt.Sprintf("‹ %s ›  %s  %s",
		strings.Join(dots, " "),
		Styles.Muted.Render(fmt.Sprintf("%d/%d", c.Index()+1, c.Len())),
		Styles.Hint.Render(state))
}
