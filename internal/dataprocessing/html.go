package dataprocessing

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// parseHTMLTables parses the full content as HTML and converts every <table>
// element into a dataset. The first row of each table (th or td cells) is
// taken as the header. This path does not unify tables into one dataset.
func parseHTMLTables(content []byte) ([]*Dataset, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	var datasets []*Dataset
	for _, table := range findElements(root, "table") {
		rows := tableCells(table)
		if len(rows) == 0 || !plausibleHeader(rows[0]) {
			continue
		}
		datasets = append(datasets, newDatasetFromCells(rows[0], rows[1:]))
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("%w: document holds no usable table", ErrNoTables)
	}
	return datasets, nil
}

// findElements walks the node tree collecting elements with the given tag.
// Nested matches are not descended into, so nested tables attach to their
// outer table's cell text rather than producing duplicate datasets.
func findElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// tableCells extracts the text cells of every tr in a table element.
func tableCells(table *html.Node) [][]string {
	var rows [][]string
	for _, tr := range descendants(table, "tr") {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, strings.TrimSpace(nodeText(c)))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// descendants collects all matching elements below n, including nested ones.
func descendants(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText concatenates the text content below a node.
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
	return sb.String()
}
