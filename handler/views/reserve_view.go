package views

import (
	"lever/core"
)

// Reserve reserve view, the stored aggregates joined with the static
// market parameters.
type Reserve struct {
	core.Reserve
	Risk core.RiskParams `json:"risk"`
}
