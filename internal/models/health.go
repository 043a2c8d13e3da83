package models

import "strings"

// HealthStatus is the reply of GET /api/health
type HealthStatus struct {
	Mode  string
	Model string
}

// Badge is the header element describing the backend
type Badge struct {
	Mode  string // uppercased
	Model string // empty when the backend reports none
}

// Badge builds the header badge for this status
func (h HealthStatus) Badge() Badge {
	return Badge{
		Mode:  strings.ToUpper(h.Mode),
		Model: h.Model,
	}
}

// HasModel reports whether a model name should be shown
func (b Badge) HasModel() bool {
	return b.Model != ""
}
