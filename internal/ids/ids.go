package ids

import "github.com/segmentio/ksuid"

// New returns a sortable unique identifier used to tag a pipeline run.
func New() string {
	return ksuid.New().String()
}
