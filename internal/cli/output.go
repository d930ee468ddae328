package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// render prints v as JSON, or as the table built by tbl when attached to a
// terminal.
func (a *App) render(v any, tbl func() string) error {
	if a.isTerminal() {
		_, err := fmt.Fprintln(a.out, tbl())
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func moduleTable(mods []models.TrainingModule) string {
	t := newTable("ID", "NAME", "TYPE", "INSTALLED", "COMPATIBLE", "EDITABLE", "DISABLED", "PROGRESS")
	for _, m := range mods {
		t.Row(
			m.ID,
			m.Name.ReferenceValue,
			string(m.Type),
			yesNo(m.Installed),
			yesNo(m.Compatible),
			yesNo(m.Editable),
			yesNo(m.Disabled),
			progressLabel(m.Progress),
		)
	}
	return t.String()
}

func moduleDetail(m models.TrainingModule) string {
	t := newTable("FIELD", "VALUE")
	t.Rows(
		[]string{"id", m.ID},
		[]string{"name", m.Name.ReferenceValue},
		[]string{"type", string(m.Type)},
		[]string{"revision", strconv.Itoa(m.Revision)},
		[]string{"steps", strconv.Itoa(len(m.Contents.Steps))},
		[]string{"pages", strconv.Itoa(pageCount(m.Contents))},
		[]string{"dhis version range", m.DhisVersionRange},
		[]string{"dhis app key", m.DhisAppKey},
		[]string{"dhis launch url", m.DhisLaunchUrl},
		[]string{"dhis authorities", strings.Join(m.DhisAuthorities, ", ")},
		[]string{"translation", translationLabel(m.Translation)},
		[]string{"last translation sync", timeLabel(m.LastTranslationSync)},
		[]string{"installed", yesNo(m.Installed)},
		[]string{"compatible", yesNo(m.Compatible)},
		[]string{"editable", yesNo(m.Editable)},
		[]string{"disabled", yesNo(m.Disabled)},
		[]string{"progress", progressLabel(m.Progress)},
		[]string{"created", m.User.Name + " " + timeLabel(m.Created)},
		[]string{"last updated", m.LastUpdatedBy.Name + " " + timeLabel(m.LastUpdated)},
	)
	return t.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func progressLabel(p models.Progress) string {
	switch {
	case p.Completed:
		return "done"
	case p.LastStep == 0:
		return "-"
	}
	return "step " + strconv.Itoa(p.LastStep)
}

func translationLabel(t models.TranslationConnection) string {
	if t.Project == "" {
		return t.Provider
	}
	return t.Provider + " " + t.Project
}

func timeLabel(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}

func pageCount(c models.DomainContents) int {
	n := 0
	for _, s := range c.Steps {
		n += len(s.Pages)
	}
	return n
}
