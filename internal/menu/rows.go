package menu

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RowSelector matches one calendar day of the meal schedule table.
const RowSelector = "table.boxstyle02 tbody tr"

// Row is one table row before assembly. Each cell holds its raw text
// fragments in document order.
type Row struct {
	Label string
	Cells [][]string
}

// LocateRows returns the schedule rows in source order. Rows outside the
// schedule table are ignored.
func LocateRows(doc *goquery.Document) []Row {
	sel := doc.Find(RowSelector)
	rows := make([]Row, 0, sel.Length())
	sel.Each(func(_ int, tr *goquery.Selection) {
		row := Row{Label: rowLabel(tr)}
		tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
			row.Cells = append(row.Cells, TextFragments(td.Get(0)))
		})
		rows = append(rows, row)
	})
	return rows
}

// date links are the usual case; some rows carry the label as bare th text.
// A link whose text is only whitespace still counts and yields "".
func rowLabel(tr *goquery.Selection) string {
	if label, ok := firstOwnText(tr.Find("th a")); ok {
		return strings.TrimSpace(label)
	}
	label, _ := firstOwnText(tr.Find("th"))
	return strings.TrimSpace(label)
}

func firstOwnText(sel *goquery.Selection) (string, bool) {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				return c.Data, true
			}
		}
	}
	return "", false
}

// TextFragments collects every text node below node, in document order.
// Element kinds are not inspected, only their text.
func TextFragments(node *html.Node) []string {
	var out []string
	collectText(node, &out)
	return out
}

func collectText(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*out = append(*out, node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, out)
	}
}
