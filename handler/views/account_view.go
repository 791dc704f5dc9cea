package views

import (
	"lever/core"
)

// Account account view
type Account struct {
	UserID   string               `json:"user_id"`
	Chain    core.Chain           `json:"chain"`
	Supplies []*core.Supply       `json:"supplies"`
	Borrows  []*core.Borrow       `json:"borrows"`
	Health   *core.HealthSnapshot `json:"health"`
}
