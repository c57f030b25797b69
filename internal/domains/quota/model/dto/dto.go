package dto

import (
	"visaprep/internal/domains/quota/model"
)

// QuotaStatusResponse is the quota display for one client. Non-terminal
// appointments hold a logical reservation, so Available already deducts them
// even though Used only moves at consumption.
type QuotaStatusResponse struct {
	ClientID           string `json:"client_id"`
	Allowance          int    `json:"allowance"`
	Used               int    `json:"used"`
	ActiveReservations int    `json:"active_reservations"`
	Available          int    `json:"available"`
}

func (r *QuotaStatusResponse) FromModel(record model.QuotaRecord, activeReservations int) {
	r.ClientID = record.ClientID
	r.Allowance = record.Allowance
	r.Used = record.Used
	r.ActiveReservations = activeReservations
	r.Available = record.Allowance - record.Used - activeReservations

	if r.Available < 0 {
		r.Available = 0
	}
}
