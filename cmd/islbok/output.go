package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/naveenspark/islendingabok/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7cc4f0")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017"))
)

func validateOutput(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printPerson(w io.Writer, format string, p domain.Person) error {
	if format == "json" {
		return printJSON(w, p)
	}

	keys := make([]string, 0, len(p))
	width := 0
	for k := range p {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Name()) + "\n")
	for _, k := range keys {
		sb.WriteString("  " + keyStyle.Render(fmt.Sprintf("%-*s", width, k)) + "  " + p.String(k) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func printPeople(w io.Writer, format string, people domain.People) error {
	if format == "json" {
		if people == nil {
			people = domain.People{}
		}
		return printJSON(w, people)
	}
	if len(people) == 0 {
		_, err := fmt.Fprintln(w, sectionStyle.Render("nobody found"))
		return err
	}

	nameWidth := 4
	for _, p := range people {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name()))
	}

	var sb strings.Builder
	sb.WriteString(sectionStyle.Render(pad("NAME", nameWidth)+"  "+pad("BORN", 12)+"  ID") + "\n")
	for _, p := range people {
		sb.WriteString(pad(p.Name(), nameWidth) + "  " + pad(p.DOB(), 12) + "  " + idStyle.Render(p.ID()) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
