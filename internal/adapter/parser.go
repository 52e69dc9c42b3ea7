package adapter

import (
	"strings"
	"time"
	"unicode"

	"github.com/amishk599/jobmerge/internal/markdown"
	"github.com/amishk599/jobmerge/internal/model"
	"github.com/amishk599/jobmerge/internal/normalize"
)

// RowParser maps table rows into listings. Rows lacking a company, title, or
// link are skipped silently.
type RowParser interface {
	ParseRows(rows []markdown.Row, now time.Time) []model.Listing
}

// ParserFor returns the column layout used by source.
func ParserFor(source model.Source) RowParser {
	switch source {
	case model.SourceScout:
		return scoutParser{}
	case model.SourceSpeedyApply:
		return speedyApplyParser{}
	case model.SourceSimplify:
		return simplifyParser{}
	default:
		return nil
	}
}

// dittoGlyphs mark "same company as the row above". The second form is the
// UTF-8 arrow read back as Latin-1, which some copies of the README carry.
var dittoGlyphs = []string{"↳", "â†³"}

func isDitto(s string) bool {
	for _, g := range dittoGlyphs {
		if s == g {
			return true
		}
	}
	return false
}

// scoutParser reads [company, title, location, link, age] and resolves ditto
// rows to the last non-empty company seen.
type scoutParser struct{}

func (scoutParser) ParseRows(rows []markdown.Row, now time.Time) []model.Listing {
	var out []model.Listing
	prevCompany := ""
	for _, row := range rows {
		company := row.Cell(0).Text
		if isDitto(company) {
			company = prevCompany
		} else if company != "" {
			prevCompany = company
		}

		l, ok := newListing(model.SourceScout, listingFields{
			company:  company,
			title:    row.Cell(1).Text,
			location: row.Cell(2).Text,
			href:     row.Cell(3).Href(),
			age:      row.Cell(4).Text,
		}, now)
		if ok {
			out = append(out, l)
		}
	}
	return out
}

// speedyApplyParser mixes two table shapes: when column 3 holds a currency
// amount it is the salary and the link and age shift one column right.
type speedyApplyParser struct{}

func (speedyApplyParser) ParseRows(rows []markdown.Row, now time.Time) []model.Listing {
	var out []model.Listing
	for _, row := range rows {
		f := listingFields{
			company:  row.Cell(0).Text,
			title:    row.Cell(1).Text,
			location: row.Cell(2).Text,
		}
		if col := row.Cell(3).Text; hasCurrency(col) {
			f.salary = col
			f.href = row.Cell(4).Href()
			f.age = row.Cell(5).Text
		} else {
			f.href = row.Cell(3).Href()
			f.age = row.Cell(4).Text
		}

		if l, ok := newListing(model.SourceSpeedyApply, f, now); ok {
			out = append(out, l)
		}
	}
	return out
}

// simplifyParser reads [company, title, location, salary, age] and takes the
// link from the first cell in the row that has one, since the link column
// moves around.
type simplifyParser struct{}

func (simplifyParser) ParseRows(rows []markdown.Row, now time.Time) []model.Listing {
	var out []model.Listing
	for _, row := range rows {
		l, ok := newListing(model.SourceSimplify, listingFields{
			company:  row.Cell(0).Text,
			title:    row.Cell(1).Text,
			location: row.Cell(2).Text,
			salary:   row.Cell(3).Text,
			href:     firstHref(row),
			age:      row.Cell(4).Text,
		}, now)
		if ok {
			out = append(out, l)
		}
	}
	return out
}

type listingFields struct {
	company  string
	title    string
	location string
	salary   string
	href     string
	age      string
}

// newListing normalizes raw cell values into a Listing. It reports false when
// a required field is empty after normalization.
func newListing(source model.Source, f listingFields, now time.Time) (model.Listing, bool) {
	l := model.Listing{
		Company:    normalize.StripEmoji(f.company),
		Title:      strings.TrimSpace(f.title),
		Location:   strings.TrimSpace(f.location),
		Link:       normalize.Absolutize(f.href),
		DatePosted: normalize.ParseDate(f.age, now),
		Salary:     strings.TrimSpace(f.salary),
		JobType:    source.JobType(),
		Source:     source,
	}
	if l.Company == "" || l.Title == "" || l.Link == "" {
		return model.Listing{}, false
	}
	return l, true
}

func hasCurrency(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Sc, r) {
			return true
		}
	}
	return false
}

func firstHref(row markdown.Row) string {
	for _, c := range row {
		if href := c.Href(); href != "" {
			return href
		}
	}
	return ""
}
