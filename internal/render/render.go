// Package render turns record lists into table trees. Every function here is
// pure: the same records always produce the same tree.
package render

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

// DefaultMaxDescription is the display length of free-text cells.
const DefaultMaxDescription = 50

// CellKind selects how a cell is drawn.
type CellKind int

const (
	CellText CellKind = iota
	CellLink
	CellCode
	CellDescription
	CellBadge
	CellNone
)

// Badge is one of the two fixed boolean variants.
type Badge int

const (
	BadgeNo Badge = iota
	BadgeYes
)

// Cell is a single table cell. Text and Tooltip are already HTML-escaped.
type Cell struct {
	Kind      CellKind
	Text      string
	Href      string
	Tooltip   string
	Truncated bool
	Badge     Badge
	Tone      string
}

// Control is an action button bound to a record id.
type Control struct {
	Action actions.Kind
	Tag    string
	ID     string
	Label  string
}

// Row is one record.
type Row struct {
	ID       string
	Cells    []Cell
	Controls []Control
}

// Table is the render tree for one list. Placeholder is set, and Rows is
// empty, when there are no records.
type Table struct {
	Kind        models.ListKind
	Title       string
	Headers     []string
	Rows        []Row
	Placeholder string
}

// Empty reports whether the table is the no-data placeholder.
func (t Table) Empty() bool {
	return t.Placeholder != ""
}

// Renderer holds the display options shared by the three list renderers.
type Renderer struct {
	MaxDescription int
}

// NewRenderer returns a renderer truncating free text at maxDescription.
// Non-positive values fall back to DefaultMaxDescription.
func NewRenderer(maxDescription int) *Renderer {
	if maxDescription <= 0 {
		maxDescription = DefaultMaxDescription
	}
	return &Renderer{MaxDescription: maxDescription}
}

// Users renders the user list.
func (r *Renderer) Users(users []models.User) Table {
	t := Table{
		Kind:    models.ListUsers,
		Title:   "User management",
		Headers: []string{"Username", "Email", "Student ID", "Admin", "Teacher"},
	}
	if len(users) == 0 {
		t.Placeholder = "No users"
		return t
	}

	t.Rows = make([]Row, 0, len(users))
	for _, u := range users {
		id := u.ID.String()
		t.Rows = append(t.Rows, Row{
			ID: id,
			Cells: []Cell{
				Link(u.Name, "/user/"+url.PathEscape(id)),
				Text(u.Email),
				Text(u.StudentID),
				Flag(u.IsAdmin, "admin"),
				Flag(u.IsTeacher, "teacher"),
			},
			Controls: controls(models.ListUsers, id),
		})
	}
	return t
}

// Groups renders the group list.
func (r *Renderer) Groups(groups []models.Group) Table {
	t := Table{
		Kind:    models.ListGroups,
		Title:   "Group management",
		Headers: []string{"Group", "Description", "Members", "Projects"},
	}
	if len(groups) == 0 {
		t.Placeholder = "No groups"
		return t
	}

	t.Rows = make([]Row, 0, len(groups))
	for _, g := range groups {
		id := g.ID.String()
		t.Rows = append(t.Rows, Row{
			ID: id,
			Cells: []Cell{
				Link(g.Name, "/group/"+url.PathEscape(id)),
				Description(g.Description, r.MaxDescription),
				Count(g.UserCount()),
				Count(g.ProjectCount()),
			},
			Controls: controls(models.ListGroups, id),
		})
	}
	return t
}

// Projects renders the project list.
func (r *Renderer) Projects(projects []models.Project) Table {
	t := Table{
		Kind:    models.ListProjects,
		Title:   "Project management",
		Headers: []string{"Project", "Description", "Group", "Port", "Container port"},
	}
	if len(projects) == 0 {
		t.Placeholder = "No projects"
		return t
	}

	t.Rows = make([]Row, 0, len(projects))
	for _, p := range projects {
		id := p.ID.String()
		t.Rows = append(t.Rows, Row{
			ID: id,
			Cells: []Cell{
				Link(p.Name, "/project/"+url.PathEscape(id)),
				Description(p.Description, r.MaxDescription),
				Text(p.GroupName),
				Code(p.Port.String()),
				Code(p.DockerPort.String()),
			},
			Controls: controls(models.ListProjects, id),
		})
	}
	return t
}

func controls(kind models.ListKind, id string) []Control {
	kinds := actions.ForList(kind)
	out := make([]Control, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Control{Action: k, Tag: k.Tag(), ID: id, Label: k.Label()})
	}
	return out
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-special characters with entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Text is a plain escaped cell.
func Text(s string) Cell {
	return Cell{Kind: CellText, Text: Escape(s)}
}

// Link is an escaped cell pointing at a record page.
func Link(s, href string) Cell {
	return Cell{Kind: CellLink, Text: Escape(s), Href: href}
}

// Code is a monospace cell for ports.
func Code(s string) Cell {
	return Cell{Kind: CellCode, Text: Escape(s)}
}

// Count is a numeric cell.
func Count(n int) Cell {
	return Cell{Kind: CellText, Text: strconv.Itoa(n)}
}

// Flag renders a boolean as the yes or no badge.
func Flag(v bool, tone string) Cell {
	if v {
		return Cell{Kind: CellBadge, Badge: BadgeYes, Text: "Yes", Tone: tone}
	}
	return Cell{Kind: CellBadge, Badge: BadgeNo, Text: "No"}
}

// Description renders free text: empty text becomes the none placeholder,
// text whose escaped form is longer than limit UTF-16 code units is cut with
// an ellipsis and keeps the full text as tooltip. The cut falls between
// characters, so no entity or surrogate pair is split.
func Description(text string, limit int) Cell {
	if text == "" {
		return Cell{Kind: CellNone, Text: "None"}
	}
	if limit <= 0 {
		limit = DefaultMaxDescription
	}

	escaped := Escape(text)
	if codeUnits(escaped) <= limit {
		return Cell{Kind: CellDescription, Text: escaped}
	}

	var b strings.Builder
	n := 0
	for _, r := range text {
		e := Escape(string(r))
		w := codeUnits(e)
		if n+w > limit {
			break
		}
		b.WriteString(e)
		n += w
	}
	return Cell{
		Kind:      CellDescription,
		Text:      b.String() + "...",
		Tooltip:   escaped,
		Truncated: true,
	}
}

// codeUnits is the UTF-16 length of s.
func codeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
