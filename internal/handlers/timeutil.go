package handlers

import "time"

// Date-only friendly string, e.g. "Mon, 02 Jan 2006"
func fmtDate(d time.Time) string {
	return d.Format("Mon, 02 Jan 2006")
}

// ISO date string, e.g. "2006-01-02"
func fmtISODate(d time.Time) string {
	return d.Format("2006-01-02")
}
