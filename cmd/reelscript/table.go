package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const subtitleWidth = 72

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    subtitleWidth,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func transcriptTable(entries []transcript.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Timestamp, e.Subtitle})
	}
	return renderTable([]string{"#", "Timestamp", "Subtitle"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func captionsTable(captions []string) string {
	rows := make([][]string, 0, len(captions))
	for i, c := range captions {
		rows = append(rows, []string{strconv.Itoa(i + 1), c})
	}
	return renderTable([]string{"#", "Caption"}, rows, []columnAlignment{alignRight, alignLeft})
}
