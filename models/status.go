package models

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusShipping   OrderStatus = "shipping"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Two generations of the schema spelled statuses differently: the original
// French vocabulary (en_attente, terminee, ...) and the English one stored by
// newer writes. New documents always get the canonical English spelling, but
// historical documents keep whatever they were written with, so every status
// comparison has to go through this table.
var statusSpellings = map[string]OrderStatus{
	"pending":      StatusPending,
	"en_attente":   StatusPending,
	"processing":   StatusProcessing,
	"en_cours":     StatusProcessing,
	"confirmed":    StatusConfirmed,
	"confirmee":    StatusConfirmed,
	"shipping":     StatusShipping,
	"en_livraison": StatusShipping,
	"completed":    StatusCompleted,
	"terminee":     StatusCompleted,
	"cancelled":    StatusCancelled,
	"annulee":      StatusCancelled,
}

var legacySpelling = map[OrderStatus]string{
	StatusPending:    "en_attente",
	StatusProcessing: "en_cours",
	StatusConfirmed:  "confirmee",
	StatusShipping:   "en_livraison",
	StatusCompleted:  "terminee",
	StatusCancelled:  "annulee",
}

// Rank along the happy path. Terminal states are absent on purpose.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusConfirmed:  2,
	StatusShipping:   3,
}

// ParseStatus normalizes either spelling to the canonical status.
func ParseStatus(s string) (OrderStatus, bool) {
	st, ok := statusSpellings[s]
	return st, ok
}

// StatusSpellings returns every stored spelling of a status, for use in
// query filters against mixed historical data.
func StatusSpellings(st OrderStatus) []string {
	return []string{string(st), legacySpelling[st]}
}

func (st OrderStatus) IsTerminal() bool {
	return st == StatusCompleted || st == StatusCancelled
}

// CanTransition reports whether an order may move from one status to
// another. Forward moves along pending → processing → confirmed → shipping →
// completed are allowed, including skipped steps (the dashboard jumps
// straight to completed for counter sales). Cancellation is allowed from any
// non-terminal state. Terminal states are immutable; re-asserting the
// current status is a no-op and always legal.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	if to == StatusCompleted {
		return true
	}
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	if !okFrom || !okTo {
		return false
	}
	return toRank > fromRank
}
