package dto

import "time"

const dateLayout = "2006-01-02"

// URLFunc resolves a storage key to a URL clients can fetch.
type URLFunc func(key string) string

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
