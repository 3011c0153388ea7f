package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/handler"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// 表示形式
const (
	ViewCard  = "card"
	ViewList  = "list"
	ViewTable = "table"
)

const (
	noEmployeesMessage = "No employees found"
	missingValue       = "-"
)

var (
	primaryColor = lipgloss.Color("#101F38")
	accentColor  = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#E53935")
	mutedColor   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Width(36)
	localBadge  = lipgloss.NewStyle().Foreground(accentColor).SetString("local")
	remoteBadge = lipgloss.NewStyle().Foreground(mutedColor).SetString("remote")
)

func validView(view string) bool {
	switch view {
	case ViewCard, ViewList, ViewTable:
		return true
	default:
		return false
	}
}

// renderDashboard は名簿全体を指定の表示形式で描画します。
func renderDashboard(result *employee.ListEmployeesResult, view string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Employee Directory"))
	b.WriteString("\n")

	if result.Remote.Status == employee.RemoteError {
		b.WriteString(errorStyle.Render(handler.FetchFailedMessage))
		b.WriteString("\n")
	}

	if len(result.Employees) == 0 {
		b.WriteString(mutedStyle.Render(noEmployeesMessage))
		b.WriteString("\n")
		return b.String()
	}

	switch view {
	case ViewCard:
		b.WriteString(renderCards(result.Employees))
	case ViewList:
		b.WriteString(renderList(result.Employees))
	default:
		b.WriteString(renderTable(result.Employees))
	}
	b.WriteString("\n")
	return b.String()
}

func renderCards(rows []*employee.Employee) string {
	cards := make([]string, 0, len(rows))
	for _, e := range rows {
		lines := []string{
			nameStyle.Render(e.Name) + "  " + badge(e),
			e.Email,
			"Designation: " + optional(e.Designation),
			"Location:    " + optional(e.Location),
			"Salary:      " + optional(e.Salary),
			mutedStyle.Render("#" + strconv.Itoa(e.ID)),
		}
		cards = append(cards, cardStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderList(rows []*employee.Employee) string {
	lines := make([]string, 0, len(rows))
	for _, e := range rows {
		lines = append(lines, fmt.Sprintf("%4d  %s  <%s>  %s @ %s  %s",
			e.ID,
			nameStyle.Render(e.Name),
			e.Email,
			optional(e.Designation),
			optional(e.Location),
			badge(e),
		))
	}
	return strings.Join(lines, "\n")
}

func renderTable(rows []*employee.Employee) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(primaryColor)).
		Headers("ID", "NAME", "EMAIL", "DESIGNATION", "LOCATION", "SALARY", "SOURCE")

	for _, e := range rows {
		t.Row(
			strconv.Itoa(e.ID),
			e.Name,
			e.Email,
			optional(e.Designation),
			optional(e.Location),
			optional(e.Salary),
			string(e.Source),
		)
	}
	return t.Render()
}

// renderValidation は項目ごとの検証メッセージを描画します。
func renderValidation(errs employee.ValidationErrors) string {
	lines := make([]string, 0, len(errs))
	for _, f := range errs.Fields() {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("%s: %s", f, errs.Message(f))))
	}
	return strings.Join(lines, "\n")
}

func renderAdded(e *employee.Employee) string {
	return successStyle.Render(fmt.Sprintf("Employee \"%s\" added successfully!", e.Name))
}

func badge(e *employee.Employee) string {
	if e.Deletable() {
		return localBadge.String()
	}
	return remoteBadge.String()
}

func optional(v *string) string {
	if v == nil || *v == "" {
		return missingValue
	}
	return *v
}
