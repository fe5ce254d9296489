package viewers

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MetaTable lays out a Meta as a two column table: one header row per group
// followed by its indented records.
type MetaTable struct {
	*tview.Table
}

func NewMetaTable() *MetaTable {
	return &MetaTable{
		Table: tview.NewTable().SetBorders(false),
	}
}

func (t *MetaTable) SetMeta(meta *Meta) {
	t.Clear()
	if meta == nil {
		return
	}
	row := 0
	for _, group := range meta.Groups {
		groupCell := tview.NewTableCell(group.Title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false)
		t.SetCell(row, 0, groupCell)
		row++
		for _, record := range group.Records {
			titleCell := tview.NewTableCell("  " + record.Title).
				SetTextColor(tcell.ColorLightGray)
			valueCell := tview.NewTableCell(record.Value).
				SetExpansion(1)
			if record.ValueAlign == AlignRight {
				valueCell.SetAlign(tview.AlignRight)
			}
			t.SetCell(row, 0, titleCell)
			t.SetCell(row, 1, valueCell)
			row++
		}
	}
	t.ScrollToBeginning()
}
