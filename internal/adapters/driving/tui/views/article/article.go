// Package article provides the article reading view for the TUI.
package article

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lore/internal/core/domain"
)

// maxLinks is how many links can be followed with the digit keys.
const maxLinks = 9

// linkPattern matches [[id]] and [[id|label]] in article bodies.
var linkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// Link is a reference from one article to another content item.
type Link struct {
	ID    string
	Label string
}

// View shows a single article with scrolling and numbered links.
type View struct {
	styles *styles.Styles

	article      *domain.ContentRef
	direction    domain.Direction
	links        []Link
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new article view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetArticle replaces the article and scrolls back to the top.
func (v *View) SetArticle(article *domain.ContentRef, direction domain.Direction) {
	v.article = article
	v.direction = direction
	v.scrollOffset = 0
	v.links = nil
	if article != nil {
		v.links = ParseLinks(article.Body)
	}
	v.wrapContent()
}

// ParseLinks returns the links in body in order of appearance.
// A link without a label uses its ID as label.
func ParseLinks(body string) []Link {
	matches := linkPattern.FindAllStringSubmatch(body, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		label := m[2]
		if label == "" {
			label = m[1]
		}
		links = append(links, Link{ID: strings.TrimSpace(m[1]), Label: label})
	}
	return links
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and link keys. Following a link raises a
// LinkClicked intent.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case "g":
		v.scrollOffset = 0
	case "G":
		v.scrollOffset = v.maxScrollOffset()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		if n > len(v.links) {
			return v, nil
		}
		link := v.links[n-1]
		return v, func() tea.Msg {
			return messages.Raise(domain.LinkClicked{ID: link.ID})
		}
	}

	return v, nil
}

// wrapContent wraps the body to fit the view width.
func (v *View) wrapContent() {
	v.lines = nil
	if v.article == nil || v.article.Body == "" {
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	n := 0
	body := linkPattern.ReplaceAllStringFunc(v.article.Body, func(string) string {
		link := v.links[n]
		n++
		if n > maxLinks {
			return link.Label
		}
		return fmt.Sprintf("%s[%d]", link.Label, n)
	})

	for _, line := range strings.Split(body, "\n") {
		for len(line) > contentWidth {
			cut := strings.LastIndex(line[:contentWidth], " ")
			if cut <= 0 {
				cut = contentWidth
			}
			v.lines = append(v.lines, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		v.lines = append(v.lines, line)
	}
}

// visibleLines returns the number of body lines that fit.
func (v *View) visibleLines() int {
	// title, synopsis, separator, links and padding
	available := v.height - 8
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the article.
func (v *View) View() string {
	if v.article == nil {
		return v.styles.Muted.Render("Loading article...")
	}

	var b strings.Builder

	title := v.article.Title
	if title == "" {
		title = v.article.ID
	}
	switch v.direction {
	case domain.DirectionBackward:
		title = "« " + title
	case domain.DirectionForward:
		title += " »"
	case domain.DirectionNone:
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.article.Synopsis != "" {
		b.WriteString(v.styles.Muted.Render(v.article.Synopsis))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", max(minInt(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("\n  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
		b.WriteString("\n")
	}

	if len(v.links) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render(fmt.Sprintf("[1-%d] follow link", minInt(len(v.links), maxLinks))))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

// Article returns the article shown.
func (v *View) Article() *domain.ContentRef {
	return v.article
}

// Direction returns the transition direction the article arrived with.
func (v *View) Direction() domain.Direction {
	return v.direction
}

// Links returns the links in the article body.
func (v *View) Links() []Link {
	return v.links
}

// ScrollOffset returns the first visible body line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
