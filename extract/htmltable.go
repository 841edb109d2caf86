package extract

import (
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/poiesic/medallion/core"
)

// decodeHTML extracts the first <table> of an HTML document. The first row
// is the header. A document with no tables yields an empty table; the
// validation checkpoint decides its fate.
func decodeHTML(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	tableNode := findFirstElement(doc, "table")
	if tableNode == nil {
		return core.NewTable(), nil
	}

	var rows [][]string
	collectTableRows(tableNode, &rows)
	if len(rows) == 0 {
		return core.NewTable(), nil
	}

	header := rows[0]
	columns := make([][]any, len(header))
	for _, row := range rows[1:] {
		for i := range header {
			if i < len(row) {
				columns[i] = append(columns[i], row[i])
			} else {
				columns[i] = append(columns[i], nil)
			}
		}
	}

	table := core.NewTable()
	for i, name := range header {
		if err := table.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func findFirstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectTableRows gathers the <tr> rows of a table, descending through
// thead/tbody/tfoot but not into nested tables.
func collectTableRows(n *html.Node, rows *[][]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			var cells []string
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
					cells = append(cells, nodeText(cell))
				}
			}
			*rows = append(*rows, cells)
		case "thead", "tbody", "tfoot":
			collectTableRows(c, rows)
		}
	}
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
