package markdown

import (
	"testing"
)

const pipeTableDoc = `# Summer Internships

Some intro text with a [link](https://example.com/readme).

| Company | Role | Location | Application/Link | Date Posted |
| ------- | ---- | -------- | ---------------- | ----------- |
| **[Acme](https://acme.com)** | SWE Intern | NYC | <a href="https://acme.com/apply/1"><img src="apply.png" alt="Apply"></a> | 3d |
| ↳ | Data Intern | Remote | [Apply](https://acme.com/apply/2) | 5d |
`

func TestExtractTables_PipeTable(t *testing.T) {
	tables, err := NewExtractor().ExtractTables(pipeTableDoc)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0]
	if len(rows) != 2 {
		t.Fatalf("expected 2 body rows (header excluded), got %d", len(rows))
	}

	first := rows[0]
	if len(first) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(first))
	}
	if first.Cell(0).Text != "Acme" {
		t.Errorf("company text = %q, want Acme", first.Cell(0).Text)
	}
	if first.Cell(0).Href() != "https://acme.com" {
		t.Errorf("company href = %q, want https://acme.com", first.Cell(0).Href())
	}
	if first.Cell(3).Href() != "https://acme.com/apply/1" {
		t.Errorf("link href = %q, want https://acme.com/apply/1", first.Cell(3).Href())
	}
	if first.Cell(4).Text != "3d" {
		t.Errorf("age = %q, want 3d", first.Cell(4).Text)
	}

	second := rows[1]
	if second.Cell(0).Text != "↳" {
		t.Errorf("ditto cell = %q, want ↳", second.Cell(0).Text)
	}
	if got := second.Cell(3).Links; len(got) != 1 || got[0].Text != "Apply" {
		t.Errorf("links = %+v, want one link with text Apply", got)
	}
}

const htmlTablesDoc = `## Section one

<table>
<thead><tr><th>Company</th><th>Position</th><th>Location</th><th>Posting</th><th>Age</th></tr></thead>
<tbody>
<tr><td><strong>Beta</strong></td><td>Engineer</td><td>Austin, TX</td><td><a href="https://beta.io/jobs/1">Apply</a></td><td>1d</td></tr>
</tbody>
</table>

## Section two

| Company | Position | Location | Salary | Posting | Age |
|---|---|---|---|---|---|
| Gamma | Intern | Remote | $45/hr | [Apply](https://gamma.dev/j/9) | 2d |
| Delta | Intern | Boston | $50/hr | [Apply](https://delta.dev/j/1) | 4d |
`

func TestExtractTables_MultipleTablesInDocumentOrder(t *testing.T) {
	tables, err := NewExtractor().ExtractTables(htmlTablesDoc)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if len(tables[0]) != 1 || tables[0][0].Cell(0).Text != "Beta" {
		t.Errorf("first table = %+v, want single Beta row", tables[0])
	}
	if len(tables[1]) != 2 || tables[1][1].Cell(0).Text != "Delta" {
		t.Errorf("second table = %+v, want Gamma then Delta", tables[1])
	}
	if got := tables[1][0].Cell(3).Text; got != "$45/hr" {
		t.Errorf("salary cell = %q, want $45/hr", got)
	}

	rows := Rows(tables)
	if len(rows) != 3 {
		t.Fatalf("Rows: expected 3 rows, got %d", len(rows))
	}
	want := []string{"Beta", "Gamma", "Delta"}
	for i, w := range want {
		if rows[i].Cell(0).Text != w {
			t.Errorf("Rows[%d] company = %q, want %q", i, rows[i].Cell(0).Text, w)
		}
	}
}

func TestExtractTables_IgnoresNonTableContent(t *testing.T) {
	doc := "# Title\n\nJust a paragraph with [a link](https://x.com).\n\n- a list\n- item\n"
	tables, err := NewExtractor().ExtractTables(doc)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("expected no tables, got %d", len(tables))
	}
}

func TestExtractTables_MalformedDoesNotFail(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "delimiter row mismatch", doc: "| a | b |\n|---|\n| c | d |\n"},
		{name: "unclosed html table", doc: "<table>\n<tr><td>Orphan</td><td>Row"},
		{name: "stray pipes", doc: "|||\n||\n"},
		{name: "empty", doc: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := NewExtractor().ExtractTables(tt.doc)
			if err != nil {
				t.Fatalf("ExtractTables: unexpected error %v", err)
			}
			for _, row := range Rows(tables) {
				if len(row) == 0 {
					t.Error("expected rows without cells to be dropped")
				}
			}
		})
	}
}

func TestRowCell_OutOfRange(t *testing.T) {
	row := Row{{Text: "only"}}
	if got := row.Cell(5); got.Text != "" || got.Href() != "" {
		t.Errorf("Cell(5) = %+v, want empty cell", got)
	}
	if got := row.Cell(-1); got.Text != "" {
		t.Errorf("Cell(-1) = %+v, want empty cell", got)
	}
}
