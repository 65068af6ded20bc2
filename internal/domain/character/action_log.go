package character

import "time"

const (
	// MaxLogEntries bounds the action log
	MaxLogEntries = 20

	logTimeFormat = "3:04:05 PM"
)

// ActionLog holds timestamped entries, most recent first
type ActionLog []string

// Add prepends an entry stamped with at and evicts the oldest past the bound
func (l *ActionLog) Add(at time.Time, text string) {
	entry := at.Format(logTimeFormat) + " - " + text
	*l = append(ActionLog{entry}, *l...)
	l.truncate()
}

func (l *ActionLog) truncate() {
	if len(*l) > MaxLogEntries {
		*l = (*l)[:MaxLogEntries]
	}
}
