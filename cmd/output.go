package cmd

import (
	"io"
	"text/tabwriter"
	"time"

	"github.com/isdelr/auction-lab/internal/views"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// stateErr turns an error view state into a command error.
func stateErr[T any](state views.State[T]) error {
	if state.IsError() {
		return cliError(state.Err)
	}
	return nil
}

type cliError string

func (e cliError) Error() string { return string(e) }
