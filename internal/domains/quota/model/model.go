package model

import (
	"visaprep/shared/model"
)

const (
	TableName  = "quota_records"
	EntityName = "quota"

	FieldID        = "id"
	FieldClientID  = "client_id"
	FieldAllowance = "allowance"
	FieldUsed      = "used"
)

// QuotaRecord tracks, per client, how many simulations have been consumed
// against a fixed allowance. Created lazily on the client's first request and
// mutated only through the quota service.
type QuotaRecord struct {
	ID        string `db:"id"`
	ClientID  string `db:"client_id"`
	Allowance int    `db:"allowance"`
	Used      int    `db:"used"`
	model.Metadata
}
