package domain

// TaskRow is one line of the chronological task table.
type TaskRow struct {
	StartTime Timestamp
	Command   string
	Duration  string
	DurationS float64
}

// Report bundles everything derived from one root audit record.
type Report struct {
	// Root is the audit record path the report was built from.
	Root    string
	Records []AuditRecord
	Graph   *Graph
	DOT     string
	Tasks   []TaskRow
	// SVG holds the rendered graph when an image renderer was available.
	SVG []byte
}

// TaskTable returns one row per record, in record order.
func TaskTable(records []AuditRecord) []TaskRow {
	rows := make([]TaskRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		rows = append(rows, TaskRow{
			StartTime: rec.Tags.StartTime,
			Command:   rec.CommandString(),
			Duration:  rec.Tags.Duration,
			DurationS: rec.Tags.DurationS,
		})
	}
	return rows
}
