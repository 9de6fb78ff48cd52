package store

import (
	"github.com/unipoker/poker-services/internal/pokersvc/service"
)

// The concrete stores must keep satisfying the service-layer interfaces.
var (
	_ service.UserStore        = (*UserStore)(nil)
	_ service.GameStore        = (*GameStore)(nil)
	_ service.GamePlayerStore  = (*GamePlayerStore)(nil)
	_ service.JoinRequestStore = (*JoinRequestStore)(nil)
	_ service.LedgerStore      = (*LedgerStore)(nil)
	_ service.MessageStore     = (*ChatStore)(nil)
)
