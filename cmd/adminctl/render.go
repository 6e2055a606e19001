package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/simp-lee/adminboard/internal/tableview"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
)

// renderView prints the view's current page as an aligned table followed by
// the pagination caption.
func renderView[T any](v *tableview.View[T]) {
	cols := v.VisibleColumns()
	rows := v.Rows()

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len(col.Title)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, col := range cols {
			val := col.Value(row)
			cells[r][i] = val
			if len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	for i, col := range cols {
		headerColor.Printf("%-*s  ", widths[i], col.Title)
	}
	fmt.Println()
	for i := range cols {
		fmt.Print(strings.Repeat("-", widths[i]), "  ")
	}
	fmt.Println()
	for _, row := range cells {
		for i, val := range row {
			fmt.Printf("%-*s  ", widths[i], val)
		}
		fmt.Println()
	}
	labelColor.Println(v.Label())
}

// confirm asks a blocking y/N question on stdin and reports approval. Only
// an explicit "y" or "yes" counts.
func confirm(prompt string) bool {
	warnColor.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
