package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/views/article"
	"github.com/custodia-labs/lore/internal/core/domain"
)

type launchKind int

const (
	launchDesktop launchKind = iota
	launchSearch
	launchResult
)

type launch struct {
	kind  launchKind
	query string
	id    string
}

// Option configures an App.
type Option func(*App)

// WithLayout selects the article page arrangement.
func WithLayout(layout domain.Layout) Option {
	return func(a *App) {
		if layout.IsValid() {
			a.layout = layout
		}
	}
}

// WithSearch starts the app on the results for query.
func WithSearch(query string) Option {
	return func(a *App) {
		a.launch = launch{kind: launchSearch, query: query}
	}
}

// WithSearchResult starts the app on the article with the given ID.
func WithSearchResult(id, query string) Option {
	return func(a *App) {
		a.launch = launch{kind: launchResult, id: id, query: query}
	}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for Bubbletea and driven.Renderer for the navigator:
// key presses become intents, and render intents update what View draws.
type App struct {
	ports  *Ports
	exec   *Executor
	styles *styles.Styles
	keymap *keymap.KeyMap
	layout domain.Layout
	launch launch

	input     *input.SearchInput
	sets      *list.CardList
	items     *list.CardList
	results   *list.CardList
	article   *article.View
	statusbar *status.Bar

	// side is the list shown beside an article in layout B.
	side *list.CardList

	page       messages.PageType
	set        *domain.ContentRef
	setLoading bool
	setErr     error
	query      string
	searching  bool
	searchErr  error
	media      *domain.ContentRef

	firstLaunch  *domain.FirstLaunch
	focusPending bool
	showHelp     bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI and connects it to the ports built by factory.
func NewApp(factory PortsFactory, opts ...Option) (*App, error) {
	if factory == nil {
		return nil, ErrMissingFactory
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		exec:      NewExecutor(),
		styles:    s,
		keymap:    km,
		layout:    domain.LayoutA,
		input:     input.NewSearchInput(s),
		sets:      list.NewCardList(s, "Browse"),
		items:     list.NewCardList(s, "Section"),
		results:   list.NewCardList(s, "Results"),
		article:   article.NewView(s),
		statusbar: status.NewBar(s, km),
		page:      messages.PageHome,
	}
	for _, opt := range opts {
		opt(a)
	}

	ports, err := factory(a, a.exec)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	a.ports = ports

	return a, nil
}

// Init implements tea.Model. It launches the first page.
func (a *App) Init() tea.Cmd {
	timestamp := uint32(time.Now().Unix())

	switch a.launch.kind {
	case launchSearch:
		a.ports.Launcher.LaunchSearch(timestamp, a.launch.query)
	case launchResult:
		a.ports.Launcher.ActivateSearchResult(timestamp, a.launch.id, a.launch.query)
	case launchDesktop:
		a.ports.Launcher.DesktopLaunch(timestamp)
	}

	return tea.Batch(
		tea.SetWindowTitle("lore"),
		a.afterDispatch(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.WorkDone:
		if msg.Apply != nil {
			msg.Apply()
		}
		return a, a.afterDispatch()

	case messages.IntentRaised:
		return a, a.dispatch(msg.Intent)

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	}

	// cursor blink and the like
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.input.Focused() {
		return a.handleInputKey(msg)
	}

	k := msg.String()

	if a.showHelp {
		if keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Cancel) {
			a.showHelp = false
		}
		return a, nil
	}

	// The lightbox is closed locally; it is not a history change.
	if a.media != nil {
		if keymap.Matches(k, a.keymap.Cancel) || keymap.Matches(k, a.keymap.Select) {
			a.media = nil
		}
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.showHelp = true
		return a, nil
	case keymap.Matches(k, a.keymap.Focus):
		focus := a.input.Focus()
		a.statusbar.SetState(status.StateInput)
		return a, tea.Batch(focus, a.dispatch(domain.SearchFocused{}))
	case keymap.Matches(k, a.keymap.Back):
		return a, a.dispatch(domain.BackClicked{})
	case keymap.Matches(k, a.keymap.Forward):
		return a, a.dispatch(domain.ForwardClicked{})
	case keymap.Matches(k, a.keymap.Home):
		return a, a.dispatch(domain.HomeClicked{})
	}

	if a.page == messages.PageArticle {
		var cmd tea.Cmd
		a.article, cmd = a.article.Update(msg)
		return a, cmd
	}
	return a.handleListKey(msg)
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // other keys are typed into the search box
	switch msg.Type {
	case tea.KeyEnter:
		text, ok := a.input.Submitted()
		if !ok {
			return a, nil
		}
		a.input.Blur()
		return a, a.dispatch(domain.SearchSubmitted{Text: text})
	case tea.KeyEsc:
		a.input.Blur()
		if cur := a.ports.Navigator.Current(); cur != nil {
			a.input.SetValue(cur.Query())
		}
		a.syncStatus()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := a.activeList()
	k := msg.String()

	if keymap.Matches(k, a.keymap.Select) {
		item := l.SelectedItem()
		if item == nil {
			return a, nil
		}
		return a, a.dispatch(a.openIntent(item))
	}

	l.Update(msg)
	if ch, ok := a.activeChannel(); ok && keymap.Matches(k, a.keymap.Down) && l.NearEnd() {
		return a, a.dispatch(domain.LoadMore{Channel: ch})
	}
	return a, nil
}

// openIntent picks the intent for opening a card on the current page.
func (a *App) openIntent(item *domain.ContentRef) domain.Intent {
	switch item.Kind {
	case domain.KindSet:
		return domain.SetClicked{Model: item}
	case domain.KindMedia:
		return domain.LinkClicked{ID: item.ID}
	case domain.KindArticle:
	}
	if a.page == messages.PageSearch {
		return domain.SearchResultClicked{Model: item}
	}
	return domain.ItemClicked{Model: item}
}

func (a *App) activeList() *list.CardList {
	switch a.page {
	case messages.PageSearch:
		return a.results
	case messages.PageSection:
		return a.items
	case messages.PageHome, messages.PageArticle:
	}
	return a.sets
}

func (a *App) activeChannel() (domain.Channel, bool) {
	switch a.page {
	case messages.PageSearch:
		return domain.ChannelSearch, true
	case messages.PageSection:
		return domain.ChannelSection, true
	case messages.PageHome, messages.PageArticle:
	}
	return 0, false
}

// dispatch hands an intent to the navigator and collects the work it scheduled.
func (a *App) dispatch(intent domain.Intent) tea.Cmd {
	a.ports.Navigator.Dispatch(intent)
	return a.afterDispatch()
}

func (a *App) afterDispatch() tea.Cmd {
	cmds := []tea.Cmd{a.exec.Flush()}
	if a.focusPending {
		a.focusPending = false
		cmds = append(cmds, a.input.Focus())
	}
	a.syncStatus()
	return tea.Batch(cmds...)
}

func (a *App) syncStatus() {
	bar := a.statusbar
	bar.Clear()
	bar.SetPage(a.pageLabel())
	if h, ok := a.ports.Navigator.(historyState); ok {
		bar.SetHistory(h.CanGoBack(), h.CanGoForward())
	}

	if a.input.Focused() {
		bar.SetState(status.StateInput)
		return
	}

	switch a.page {
	case messages.PageSearch:
		switch {
		case a.searching:
			bar.SetState(status.StateLoading)
		case a.searchErr != nil:
			bar.SetState(status.StateFailed)
			bar.SetMessage(a.searchErr.Error())
		default:
			bar.SetCount(a.results.Count())
		}
	case messages.PageSection:
		switch {
		case a.setLoading:
			bar.SetState(status.StateLoading)
		case a.setErr != nil:
			bar.SetState(status.StateFailed)
			bar.SetMessage(a.setErr.Error())
		default:
			bar.SetCount(a.items.Count())
		}
	case messages.PageHome:
		bar.SetCount(a.sets.Count())
	case messages.PageArticle:
	}
}

func (a *App) pageLabel() string {
	switch a.page {
	case messages.PageSearch:
		return fmt.Sprintf("search: %s", a.query)
	case messages.PageSection:
		if a.set != nil {
			return "section: " + a.set.Title
		}
	case messages.PageHome, messages.PageArticle:
	}
	return a.page.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{a.input.View(), ""}

	switch {
	case a.showHelp:
		sections = append(sections, a.viewHelp())
	case a.media != nil:
		sections = append(sections, a.viewMedia())
	default:
		sections = append(sections, a.viewPage())
	}

	sections = append(sections, "", a.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewPage() string {
	switch a.page {
	case messages.PageSearch:
		if a.searchErr != nil {
			return a.styles.Error.Render("Search failed: "+a.searchErr.Error()) + "\n\n" + a.results.View()
		}
		if a.searching && a.results.Count() == 0 {
			return a.styles.Muted.Render(fmt.Sprintf("Searching for %q...", a.query))
		}
		return a.results.View()

	case messages.PageSection:
		if a.setErr != nil {
			return a.styles.Error.Render("Could not load section: "+a.setErr.Error()) + "\n\n" + a.items.View()
		}
		return a.items.View()

	case messages.PageArticle:
		if a.layout == domain.LayoutB && a.side != nil && a.side.Count() > 0 {
			return lipgloss.JoinHorizontal(lipgloss.Top, a.side.View(), "  ", a.article.View())
		}
		return a.article.View()

	case messages.PageHome:
	}
	return a.sets.View()
}

func (a *App) viewMedia() string {
	title := a.media.Title
	if title == "" {
		title = a.media.ID
	}
	body := []string{a.styles.Title.Render(title)}
	if a.media.Synopsis != "" {
		body = append(body, a.styles.Muted.Render(a.media.Synopsis))
	}
	body = append(body, "", a.styles.Help.Render("[esc] close"))
	return a.styles.Lightbox.Render(strings.Join(body, "\n"))
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[?] close"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	bodyHeight := height - 6
	a.input.SetWidth(width)
	a.statusbar.SetWidth(width)
	for _, l := range []*list.CardList{a.sets, a.items, a.results} {
		l.SetDimensions(width, bodyHeight)
	}
	a.article.SetDimensions(width, bodyHeight)

	if a.layout == domain.LayoutB {
		sideWidth := width / 3
		a.items.SetDimensions(sideWidth, bodyHeight)
		a.results.SetDimensions(sideWidth, bodyHeight)
		a.article.SetDimensions(width-sideWidth-2, bodyHeight)
	}
}

// Page returns the page being shown.
func (a *App) Page() messages.PageType {
	return a.page
}

// SearchText returns the text in the search box.
func (a *App) SearchText() string {
	return a.input.Value()
}

// SearchFocused reports whether the search box has focus.
func (a *App) SearchFocused() bool {
	return a.input.Focused()
}

// Sets returns the sets on the home page.
func (a *App) Sets() []*domain.ContentRef {
	return a.sets.Items()
}

// Items returns the items of the current section.
func (a *App) Items() []*domain.ContentRef {
	return a.items.Items()
}

// Results returns the current search results.
func (a *App) Results() []*domain.ContentRef {
	return a.results.Items()
}

// Article returns the article shown on the article page.
func (a *App) Article() *domain.ContentRef {
	return a.article.Article()
}

// Media returns the media item in the lightbox, or nil.
func (a *App) Media() *domain.ContentRef {
	return a.media
}

// FirstLaunch returns the recorded first launch, or nil before it happens.
func (a *App) FirstLaunch() *domain.FirstLaunch {
	return a.firstLaunch
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.statusbar
}
