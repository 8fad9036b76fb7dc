package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/islendingabok/pkg/client"
	"github.com/naveenspark/islendingabok/pkg/domain"
)

type personLoadedMsg struct {
	id     string
	person domain.Person
	err    error
}

type relationLoadedMsg struct {
	id     string
	rel    client.Relation
	people domain.People
	err    error
}

// openPersonMsg asks the App to navigate to another person.
type openPersonMsg struct {
	id string
}

// relationKeys binds a key to each relation shown from the person view.
var relationKeys = []struct {
	key string
	rel client.Relation
}{
	{"s", client.RelationSiblings},
	{"c", client.RelationChildren},
	{"m", client.RelationMates},
	{"a", client.RelationAncestors},
	{"t", client.RelationTrace},
}

type personModel struct {
	client  API
	id      string
	person  domain.Person
	rel     client.Relation
	related domain.People
	cursor  int
	err     string
	width   int

	// The record and the relation list load independently.
	loadingPerson   bool
	loadingRelation bool
}

func newPersonModel(c API) personModel {
	return personModel{client: c}
}

func (m personModel) load(id string) (personModel, tea.Cmd) {
	m.id = id
	m.person = nil
	m.rel = ""
	m.related = nil
	m.cursor = 0
	m.err = ""
	m.loadingPerson = true
	m.loadingRelation = false
	c := m.client
	return m, func() tea.Msg {
		p, err := c.Person(context.Background(), id)
		return personLoadedMsg{id: id, person: p, err: err}
	}
}

func (m personModel) loadRelation(rel client.Relation) (personModel, tea.Cmd) {
	m.rel = rel
	m.related = nil
	m.cursor = 0
	m.loadingRelation = true
	m.err = ""
	c, id := m.client, m.id
	return m, func() tea.Msg {
		people, err := c.Relation(context.Background(), rel, id)
		return relationLoadedMsg{id: id, rel: rel, people: people, err: err}
	}
}

// selectedID is the id the copy action acts on: the highlighted relative
// when a relation list is shown, otherwise the person itself.
func (m personModel) selectedID() string {
	if m.cursor < len(m.related) {
		return m.related[m.cursor].ID()
	}
	return m.id
}

func (m personModel) Update(msg tea.Msg) (personModel, tea.Cmd) {
	switch msg := msg.(type) {
	case personLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loadingPerson = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.person = msg.person
		}
		return m, nil

	case relationLoadedMsg:
		if msg.id != m.id || msg.rel != m.rel {
			return m, nil
		}
		m.loadingRelation = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.related = msg.people
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		for _, rk := range relationKeys {
			if key == rk.key {
				return m.loadRelation(rk.rel)
			}
		}
		switch key {
		case "j", "down":
			if m.cursor < len(m.related)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.related) {
				if id := m.related[m.cursor].ID(); id != "" {
					return m, func() tea.Msg { return openPersonMsg{id: id} }
				}
			}
		}
	}
	return m, nil
}

func (m personModel) View() string {
	if m.err != "" && m.person == nil {
		return "\n " + errorStyle.Render("error: "+m.err)
	}
	if m.loadingPerson || m.person == nil {
		return "\n " + dimStyle.Render("loading...")
	}

	cardWidth := min(60, m.width-4)
	if cardWidth < 30 {
		cardWidth = 30
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder
	name := m.person.Name()
	if name == "" {
		name = "#" + m.id
	}
	sb.WriteString(selectedStyle.Render(name) + "\n")
	if dob := m.person.DOB(); dob != "" {
		sb.WriteString(metaStyle.Render("born "+dob) + "\n")
	}
	sb.WriteString(metaStyle.Render("---") + "\n")

	keys := make([]string, 0, len(m.person))
	for k := range m.person {
		if k == "name" || k == "dob" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%-10s", k)) + " " + normalStyle.Render(truncStr(m.person.String(k), cardWidth-16)) + "\n")
	}

	out := "\n" + border.Render(strings.TrimRight(sb.String(), "\n")) + "\n"

	if m.rel != "" {
		out += "\n " + sectionHeaderStyle.Render("── "+strings.ToUpper(string(m.rel))+" ──") + "\n"
		switch {
		case m.loadingRelation:
			out += " " + dimStyle.Render("loading...") + "\n"
		case m.err != "":
			out += " " + errorStyle.Render("error: "+m.err) + "\n"
		case len(m.related) == 0:
			out += " " + dimStyle.Render("nobody found") + "\n"
		default:
			out += renderPeople(m.related, m.cursor, m.width)
		}
	}
	return out
}

// renderPeople renders a selectable list of person records.
func renderPeople(people domain.People, cursor, width int) string {
	nameWidth := max(20, min(40, width-30))
	var sb strings.Builder
	for i, p := range people {
		line := fmt.Sprintf("%-*s  %-12s  %s", nameWidth, truncStr(p.Name(), nameWidth), p.DOB(), p.ID())
		if i == cursor {
			sb.WriteString(" " + accentStyle.Render("›") + " " + selectedRowBg.Render(selectedStyle.Render(line)) + "\n")
		} else {
			sb.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	return sb.String()
}
