// Package schedule holds the in-memory task table and its transformations.
//
// A session runs the stages in order:
//
//	raw, _ := workbook.Load(path, opts)
//	table, report := schedule.Clean(raw)   // drop incomplete and unparseable rows
//	rows := table.Rows(now, limit)         // classify and format for one render pass
//
// # Status Values
//
//   - "Main Task": the task number has no fractional part
//   - "On Time": a sub-task whose end date is at or after now
//   - "Delayed": a sub-task whose end date is before now
//
// Status is never stored on a Record. It is derived from the task number and
// end date against a "now" captured once by the caller for the whole pass.
//
// # Display Names
//
// DisplayName prefixes the number and truncates the original name to a
// character limit (30 by default) with a "..." marker. It is always computed
// from Record.Name and never written back.
//
// # Snapshots
//
// SaveCSV writes the table with the header
//
//	Task Number,Task Name,Start Date,End Date,Status
//
// replacing any previous file at the same path.
package schedule
