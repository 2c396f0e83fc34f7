package ui

// Page is the showcase page currently on screen.
type Page int

const (
	PageHome Page = iota
	PagePricing
	PageTools
)

// Pages lists every page in navigation order.
var Pages = []Page{PageHome, PagePricing, PageTools}

func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PagePricing:
		return "Pricing"
	case PageTools:
		return "Tools"
	default:
		return "Unknown"
	}
}
