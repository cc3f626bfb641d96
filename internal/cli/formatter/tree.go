package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a rendered unit tree.
type TreeItem struct {
	Title  string
	ID     string
	Level  int
	IsLast bool
	// Done marks leaves at the final stage.
	Done    bool
	Primary bool
	Detail  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// UnitTreeItems flattens a work's unit tree for RenderTree. Labels come
// from the work's granularities and details show each leaf's stage.
func UnitTreeItems(w *domain.Work) []TreeItem {
	var items []TreeItem
	var walk func(units []domain.Unit, depth int)
	walk = func(units []domain.Unit, depth int) {
		for i, u := range units {
			item := TreeItem{
				Title:   fmt.Sprintf("%s %d", w.GranularityLabel(depth), u.Index),
				ID:      u.ID,
				Level:   depth + 1,
				IsLast:  i == len(units)-1,
				Primary: u.ID == w.PrimaryUnitID,
			}
			switch {
			case u.IsLeaf():
				stage, _ := u.StageIndex()
				item.Detail = stageLabel(w.StageWorkloads, stage)
				item.Done = len(w.StageWorkloads) > 0 && stage >= len(w.StageWorkloads)-1
			case u.IsBranch():
				item.Detail = fmt.Sprintf("%d", len(u.Children()))
			default:
				item.Detail = "malformed"
			}
			items = append(items, item)
			if u.IsBranch() {
				walk(u.Children(), depth+1)
			}
		}
	}
	walk(w.Units, 0)
	return items
}

func stageLabel(stages []domain.StageWorkload, stage int) string {
	if stage >= 0 && stage < len(stages) {
		return domain.CoalesceStr(stages[stage].Label, stages[stage].ID)
	}
	return fmt.Sprintf("stage %d", stage)
}

// RenderTree renders items as an indented tree with box-drawing
// connectors and right-aligned detail badges. Ancestors that were the last
// sibling draw blank space instead of a pipe.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	var lastAt []bool
	for idx, item := range items {
		level := max(1, item.Level)
		if level > len(lastAt) {
			lastAt = append(lastAt, make([]bool, level-len(lastAt))...)
		}
		lastAt[level-1] = item.IsLast

		var prefix strings.Builder
		for l := 1; l < level; l++ {
			if lastAt[l-1] {
				prefix.WriteString(treeSpace)
			} else {
				prefix.WriteString(treePipe)
			}
		}
		if item.IsLast {
			prefix.WriteString(treeCorner)
		} else {
			prefix.WriteString(treeBranch)
		}

		title := item.Title
		if item.ID != "" {
			title += " " + TruncID(item.ID)
		}
		marker := ""
		switch {
		case item.Primary:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(item.Title) + " " + TruncID(item.ID)
		case item.Done:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		}

		contents[idx] = StyleDim.Render(prefix.String()) + marker + title
		maxWidth = max(maxWidth, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
