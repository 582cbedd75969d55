package model

import "time"

// Proof lifecycle. Pending is the only mutable state; approved and
// rejected are terminal.
const (
	ProofPending  = "pending"
	ProofApproved = "approved"
	ProofRejected = "rejected"
)

// Payment channels accepted on submission.
const (
	ChannelBankTransfer = "bank_transfer"
	ChannelUSSD         = "ussd"
	ChannelCardTerminal = "card_terminal"
)

func ValidChannel(ch string) bool {
	switch ch {
	case ChannelBankTransfer, ChannelUSSD, ChannelCardTerminal:
		return true
	}
	return false
}

// ProofOfPayment is a requester's claim of having paid the access fee
// for a listing. The reviewer fields stay nil until the single
// pending→approved/rejected transition sets them.
type ProofOfPayment struct {
	ID              string     `db:"id" json:"id"`
	RequesterID     string     `db:"requester_id" json:"requesterId"`
	ListingID       string     `db:"listing_id" json:"listingId"`
	Amount          int64      `db:"amount" json:"amount"`
	Channel         string     `db:"channel" json:"channel"`
	Reference       string     `db:"reference" json:"reference"`
	ReceiptID       string     `db:"receipt_id" json:"receiptId"`
	Status          string     `db:"status" json:"status"`
	RejectionReason *string    `db:"rejection_reason" json:"rejectionReason,omitempty"`
	ReviewerID      *string    `db:"reviewer_id" json:"reviewerId,omitempty"`
	ReviewedAt      *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	SubmittedAt     time.Time  `db:"submitted_at" json:"submittedAt"`
}

// ProofFilter narrows proof listings. Zero values mean "no filter".
type ProofFilter struct {
	Status    string
	ListingID string
	Limit     int
	Offset    int
}
