package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/islendingabok/pkg/client"
	"github.com/naveenspark/islendingabok/pkg/domain"
)

// API is the part of the client the browser needs.
type API interface {
	Me(ctx context.Context) (domain.Person, error)
	Person(ctx context.Context, id string) (domain.Person, error)
	Find(ctx context.Context, q client.FindQuery) (domain.People, error)
	Relation(ctx context.Context, rel client.Relation, id string) (domain.People, error)
}

type view int

const (
	viewSearch view = iota
	viewResults
	viewPerson
)

type meLoadedMsg struct {
	me  domain.Person
	err error
}

type searchResultMsg struct {
	query  string
	people domain.People
	err    error
}

type copyResultMsg struct {
	id  string
	err error
}

// copyFunc writes text to the system clipboard.
var copyFunc = clipboard.WriteAll

// App is the root Bubbletea model of the person browser.
type App struct {
	client  API
	view    view
	input   string
	query   string
	results domain.People
	cursor  int
	person  personModel
	history []string
	me      domain.Person
	status  string
	loading bool
	width   int
	height  int
	frame   int
}

// NewApp creates a new browser application.
func NewApp(c API) App {
	return App{
		client: c,
		person: newPersonModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.loadMe())
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

func (a App) search(input string) tea.Cmd {
	c := a.client
	q := parseSearch(input)
	return func() tea.Msg {
		people, err := c.Find(context.Background(), q)
		return searchResultMsg{query: input, people: people, err: err}
	}
}

func copyID(id string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{id: id, err: copyFunc(id)}
	}
}

func (a App) openPerson(id string) (App, tea.Cmd) {
	if a.view == viewPerson && a.person.id != "" {
		a.history = append(a.history, a.person.id)
	}
	a.view = viewPerson
	a.status = ""
	var cmd tea.Cmd
	a.person, cmd = a.person.load(id)
	return a, cmd
}

// back leaves the person view, returning to the previous person if any.
func (a App) back() (App, tea.Cmd) {
	if n := len(a.history); n > 0 {
		id := a.history[n-1]
		a.history = a.history[:n-1]
		var cmd tea.Cmd
		a.person, cmd = a.person.load(id)
		return a, cmd
	}
	if len(a.results) > 0 {
		a.view = viewResults
	} else {
		a.view = viewSearch
	}
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.person, _ = a.person.Update(msg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case meLoadedMsg:
		if msg.err != nil {
			a.status = "could not load your record: " + msg.err.Error()
		} else {
			a.me = msg.me
		}
		return a, nil

	case searchResultMsg:
		if msg.query != a.query {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.status = msg.err.Error()
			return a, nil
		}
		a.results = msg.people
		a.cursor = 0
		a.view = viewResults
		a.status = fmt.Sprintf("%d found", len(msg.people))
		return a, nil

	case openPersonMsg:
		return a.openPerson(msg.id)

	case copyResultMsg:
		if msg.err != nil {
			a.status = "copy failed: " + msg.err.Error()
		} else {
			a.status = "copied " + msg.id
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.view {
		case viewSearch:
			return a.updateSearch(msg)
		case viewResults:
			return a.updateResults(msg)
		case viewPerson:
			return a.updatePerson(msg)
		}
	}

	if a.view == viewPerson {
		var cmd tea.Cmd
		a.person, cmd = a.person.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(a.input)
		if input == "" {
			return a, nil
		}
		a.query = input
		a.loading = true
		a.status = ""
		return a, a.search(input)
	case "esc":
		if len(a.results) > 0 {
			a.view = viewResults
			return a, nil
		}
		return a, tea.Quit
	default:
		a.input = editRune(a.input, msg.String())
	}
	return a, nil
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "/", "esc":
		a.view = viewSearch
	case "j", "down":
		if a.cursor < len(a.results)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "enter":
		if a.cursor < len(a.results) {
			if id := a.results[a.cursor].ID(); id != "" {
				return a.openPerson(id)
			}
		}
	case "y":
		if a.cursor < len(a.results) {
			return a, copyID(a.results[a.cursor].ID())
		}
	case "i":
		if a.me != nil {
			return a.openPerson(a.me.ID())
		}
	}
	return a, nil
}

func (a App) updatePerson(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "backspace":
		return a.back()
	case "/":
		a.view = viewSearch
		return a, nil
	case "y":
		if id := a.person.selectedID(); id != "" {
			return a, copyID(id)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.person, cmd = a.person.Update(msg)
	return a, cmd
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max(0, (a.width-lipgloss.Width(logo))/2)
	header := strings.Repeat(" ", logoPad) + logo + "\n"
	if a.me != nil {
		who := metaStyle.Render("signed in as ") + dimStyle.Render(a.me.Name())
		header += strings.Repeat(" ", max(0, (a.width-lipgloss.Width(who))/2)) + who
	}

	var body, help string
	switch a.view {
	case viewSearch:
		body = "\n " + inputPromptStyle.Render("find> ")
		if a.input == "" {
			body += inputPlaceholderStyle.Render("name [YYYY | MM.YYYY | DD.MM.YYYY]")
		} else {
			body += normalStyle.Render(a.input) + accentStyle.Render("█")
		}
		if a.loading {
			body += "\n\n " + dimStyle.Render("searching...")
		}
		help = " " + helpEntry("enter", "search") + "  " + helpEntry("esc", "back") + "  " + helpEntry("ctrl+c", "quit")
	case viewResults:
		body = "\n " + sectionHeaderStyle.Render("── "+a.query+" ──") + "\n"
		if len(a.results) == 0 {
			body += " " + dimStyle.Render("nobody found") + "\n"
		} else {
			body += renderPeople(a.results, a.cursor, a.width)
		}
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("y", "copy id") + "  " + helpEntry("i", "me") + "  " + helpEntry("/", "search") + "  " + helpEntry("q", "quit")
	case viewPerson:
		body = a.person.View()
		help = " " + helpEntry("s", "siblings") + "  " + helpEntry("c", "children") + "  " + helpEntry("m", "mates") + "  " + helpEntry("a", "ancestors") + "  " + helpEntry("t", "trace") + "  " + helpEntry("enter", "open") + "  " + helpEntry("y", "copy id") + "  " + helpEntry("esc", "back")
	}

	status := ""
	if a.status != "" {
		status = " " + metaStyle.Render(a.status)
	}

	// Chrome: header(2) + status(1) + help(1)
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, status, help)
}
