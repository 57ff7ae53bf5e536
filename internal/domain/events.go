package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeInvoiceStatusChanged = "invoice.status_changed"
	EventTypeInvoiceCancelled     = "invoice.cancelled"
	EventTypeTransactionTaxed     = "transaction.taxed"
	EventTypePaymentRecorded      = "payment.recorded"
	EventTypePaymentRemoved       = "payment.removed"
)

// Aggregate types
const (
	AggregateTypeInvoice     = "invoice"
	AggregateTypeTransaction = "transaction"
	AggregateTypePayment     = "payment"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// InvoiceStatusChangedEvent payload
type InvoiceStatusChangedEvent struct {
	InvoiceID      string `json:"invoice_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	TotalPaid      string `json:"total_paid"`
	Currency       string `json:"currency"`
}

// TransactionTaxedEvent payload
type TransactionTaxedEvent struct {
	TransactionID string `json:"transaction_id"`
	TaxCount      int    `json:"tax_count"`
	TotalAmount   string `json:"total_amount"`
	Currency      string `json:"currency"`
}

// PaymentRecordedEvent payload
type PaymentRecordedEvent struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

// PaymentRemovedEvent payload
type PaymentRemovedEvent struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id,omitempty"`
}

// MarshalPayload converts a typed event payload to the generic outbox form.
func MarshalPayload(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal payload"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal payload"}
	}

	return result
}
