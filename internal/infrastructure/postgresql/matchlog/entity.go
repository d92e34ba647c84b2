package matchlog

import "time"

// Status is the lifecycle state of a recorded proposal.
type Status string

const (
	// StatusProposed marks a proposal submitted to the ledger.
	StatusProposed Status = "proposed"
	// StatusAccepted marks a proposal the buyer accepted.
	StatusAccepted Status = "accepted"
	// StatusRejected marks a proposal the buyer rejected.
	StatusRejected Status = "rejected"
	// StatusCancelled marks a proposal the aggregator withdrew.
	StatusCancelled Status = "cancelled"
	// StatusDeleted marks a match removed by the buyer or asset owner.
	StatusDeleted Status = "deleted"
)

// Proposal is one aggregator-proposed match as recorded for auditing.
// Volume and price keep the ledger's integer-string representation.
type Proposal struct {
	ID         string
	MatchID    uint64
	Asset      string
	Buyer      string
	Volume     string
	Price      string
	Status     Status
	ProposedAt time.Time
	UpdatedAt  time.Time
}
