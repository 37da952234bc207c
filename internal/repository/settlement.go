package repository

import "context"

// Settlement defines the data access required by the settlement engine.
// The engine performs all of its reads and writes through a SettlementTx so
// a failed close never leaves a half-written ledger behind.
type Settlement interface {
	BeginSettlementTx(ctx context.Context) (SettlementTx, error)
}
