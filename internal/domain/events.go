package domain

// Notification event types published on the best-effort side channel.
// Failures publishing never roll back a ledger mutation.
const (
	EventTypeBalanceChanged  = "wallet.balance_changed"
	EventTypeTransferApplied = "wallet.transfer_applied"
	EventTypeRequestCreated  = "settlement.request_created"
	EventTypeRequestResolved = "settlement.request_resolved"
)

// Notification is a fire-and-forget message for the notification sink.
// The embedded payload is advisory only: receivers must re-fetch the
// authoritative account record, never trust a broadcast balance.
type Notification struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
	Payload   any    `json:"payload,omitempty"`
}

// BalanceChangedPayload is the payload for EventTypeBalanceChanged.
type BalanceChangedPayload struct {
	EntryID string `json:"entry_id"`
	Kind    string `json:"kind"`
	Amount  string `json:"amount"`
}

// TransferAppliedPayload is the payload for EventTypeTransferApplied.
type TransferAppliedPayload struct {
	CorrelationID string `json:"correlation_id"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// RequestEventPayload is the payload for the settlement request events.
type RequestEventPayload struct {
	RequestID string `json:"request_id"`
	Direction string `json:"direction"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
}
