package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vorbify/internal/convert"
	"vorbify/internal/deps"
	"vorbify/internal/history"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func rightAligned(column int) []table.ColumnConfig {
	return []table.ColumnConfig{{
		Number:      column,
		Align:       text.AlignRight,
		AlignHeader: text.AlignLeft,
	}}
}

// depsTable renders external tool availability for the deps command.
func depsTable(statuses []deps.Status) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Tool", "Role", "Status"})
	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			state = "missing"
			if status.Optional {
				state = "missing (optional)"
			}
		}
		tw.AppendRow(table.Row{status.Name, status.Description, state})
	}
	return tw.Render()
}

// historyTable renders recent conversion records, newest first.
func historyTable(records []history.Record) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Finished", "Source", "Format", "Decoder", "Quality", "Status", "Detail"})
	for _, rec := range records {
		tw.AppendRow(table.Row{
			rec.FinishedAt.Local().Format(time.DateTime),
			rec.Source,
			rec.Format,
			rec.Decoder,
			formatTableQuality(rec.Quality),
			string(rec.Status),
			rec.Detail,
		})
	}
	tw.SetColumnConfigs(rightAligned(5))
	return tw.Render()
}

// summaryTable renders the end-of-run per-file outcomes.
func summaryTable(results []convert.Result) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"File", "Format", "Quality", "Status"})
	for _, result := range results {
		status := "converted"
		if !result.Succeeded() {
			status = "failed"
		}
		tw.AppendRow(table.Row{
			result.Job.Source,
			string(result.Job.Format),
			formatTableQuality(result.Job.Quality),
			status,
		})
	}
	tw.SetColumnConfigs(rightAligned(3))
	return tw.Render()
}

func formatTableQuality(quality float64) string {
	return strconv.FormatFloat(quality, 'f', 2, 64)
}
