package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cpower013/quickjobs-site-1/internal/controller"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/query"
	"github.com/pterm/pterm"
)

const noMatches = "No jobs match your search."

// FormatRows renders listing rows as plain text, two lines per job.
func FormatRows(rows []models.ViewRow) string {
	if len(rows) == 0 {
		return noMatches + "\n"
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "[%s] %s\n", r.ID, r.Title)
		fmt.Fprintf(&b, "    %s • %s • %s • %s • %s", r.Category, orDefault(r.Location, "Location not stated"),
			r.PriceLabel, orDefault(r.PosterName, "Unknown"), r.Age)
		if r.CanDelete {
			b.WriteString(" • yours")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatDetail renders an opened listing as plain text.
func FormatDetail(v models.DetailView) string {
	return fmt.Sprintf("%s\n%s\n\n%s\n", v.Title, v.Meta, v.Description)
}

// FormatApplications renders replies to a listing as plain text.
func FormatApplications(list []models.Application) string {
	var b strings.Builder
	for _, a := range list {
		fmt.Fprintf(&b, "%s <%s>\n    %s\n", a.ApplicantName, a.ApplicantEmail, a.Message)
		if a.Contact != "" {
			fmt.Fprintf(&b, "    Contact: %s\n", a.Contact)
		}
	}
	return b.String()
}

// FormatParams summarises the active filter, e.g.
// `category: Plumbing · search: "sink" · sort: newest`.
func FormatParams(p query.Params) string {
	parts := []string{"category: " + orDefault(p.Category, "All")}
	if p.Text != "" {
		parts = append(parts, fmt.Sprintf("search: %q", p.Text))
	}
	sort := p.Sort
	if sort == "" {
		sort = query.SortNewest
	}
	parts = append(parts, "sort: "+string(sort))
	return strings.Join(parts, " · ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderer writes either pterm output or plain text.
type renderer struct {
	out    io.Writer
	styled bool
}

func (r renderer) rows(rows []models.ViewRow) error {
	if !r.styled || len(rows) == 0 {
		_, err := fmt.Fprint(r.out, FormatRows(rows))
		return err
	}

	data := pterm.TableData{{"ID", "Title", "Category", "Location", "Price", "Posted by", "Age", ""}}
	for _, row := range rows {
		price := row.PriceLabel
		if price != controller.PriceLabel(nil) {
			price = pterm.Green(price)
		}
		mine := ""
		if row.CanDelete {
			mine = pterm.Cyan("yours")
		}
		data = append(data, []string{
			row.ID,
			row.Title,
			row.Category,
			orDefault(row.Location, "Location not stated"),
			price,
			orDefault(row.PosterName, "Unknown"),
			row.Age,
			mine,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(r.out).Render()
}

func (r renderer) applications(list []models.Application) error {
	if !r.styled {
		_, err := fmt.Fprint(r.out, FormatApplications(list))
		return err
	}

	data := pterm.TableData{{"From", "Email", "Message", "Contact"}}
	for _, a := range list {
		data = append(data, []string{a.ApplicantName, a.ApplicantEmail, a.Message, orDefault(a.Contact, "-")})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(r.out).Render()
}

func (r renderer) detail(v models.DetailView) {
	if !r.styled {
		fmt.Fprint(r.out, FormatDetail(v))
		return
	}
	pterm.DefaultBox.WithTitle(v.Title).WithWriter(r.out).Println(v.Meta + "\n\n" + v.Description)
}

func (r renderer) info(msg string) {
	if !r.styled {
		fmt.Fprintln(r.out, msg)
		return
	}
	pterm.Info.WithWriter(r.out).Println(msg)
}

func (r renderer) warn(msg string) {
	if !r.styled {
		fmt.Fprintln(r.out, msg)
		return
	}
	pterm.Warning.WithWriter(r.out).Println(msg)
}

func (r renderer) header(greeting string, p query.Params) {
	line := greeting + " | " + FormatParams(p)
	if !r.styled {
		fmt.Fprintln(r.out, line)
		return
	}
	fmt.Fprintln(r.out, pterm.Bold.Sprint(line))
}
