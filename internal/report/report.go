// Package report formats a finished simulation for people and tools.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"procsim/internal/sched"
)

// WriteTrace prints one line per trace record, in simulation order.
func WriteTrace(w io.Writer, trace []sched.TraceRecord) error {
	for _, r := range trace {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatistics prints the per-process table followed by the
// system-wide means.
func WriteStatistics(w io.Writer, res *sched.Result) error {
	if _, err := fmt.Fprintf(w, "\nStatistics: %s\n", res.Policy); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Arrival", "Service", "Start", "Finish", "Turnaround", "Norm Turnaround", "Avg Response"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, p := range res.Processes {
		table.Append([]string{
			strconv.Itoa(p.PID),
			strconv.Itoa(p.Arrival),
			strconv.Itoa(p.Service),
			strconv.Itoa(p.Start),
			strconv.Itoa(p.Finish),
			strconv.Itoa(p.Turnaround),
			fmt.Sprintf("%.2f", p.NormalizedTurnaround),
			fmt.Sprintf("%.2f", p.AvgResponse),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(w, "\nSystem Wide Statistics:\nMean Turnaround Time: %f\nMean Normalized Turnaround Time: %f\nMean Average Response Time: %f\n",
		res.Summary.MeanTurnaround,
		res.Summary.MeanNormalizedTurnaround,
		res.Summary.MeanResponse,
	)
	return err
}

// WriteTraceCSV writes the trace as CSV with a header row. Event rows
// leave "until" empty; dispatch rows carry the kind of boundary event
// they scheduled and when it fires.
func WriteTraceCSV(w io.Writer, trace []sched.TraceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "action", "pid", "event", "until"}); err != nil {
		return err
	}
	for _, r := range trace {
		action, until := "event", ""
		if r.Dispatch {
			action, until = "dispatch", strconv.Itoa(r.Until)
		}
		rec := []string{
			strconv.Itoa(r.Time),
			action,
			strconv.Itoa(r.PID),
			r.Kind.String(),
			until,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
