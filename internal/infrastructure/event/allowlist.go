package event

import (
	"github.com/handwerkos/backend/internal/domain/docs"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/work"
)

// AuditAllowList is the fixed set of event types mirrored into the audit
// trail. Emissions of any other type never produce an audit record.
func AuditAllowList() []string {
	return []string{
		sales.EventTypeQuoteSent,
		sales.EventTypeQuoteAccepted,
		sales.EventTypeQuoteRejected,
		sales.EventTypeOfferSent,
		work.EventTypeOrderCreated,
		work.EventTypeOrderStarted,
		work.EventTypeOrderCompleted,
		work.EventTypeOrderCancelled,
		work.EventTypeProjectStatusChanged,
		work.EventTypeTimesheetApproved,
		inventory.EventTypeStockAdjusted,
		finance.EventTypeInvoiceSent,
		finance.EventTypeInvoicePaid,
		finance.EventTypeInvoiceOverdue,
		docs.EventTypeDocumentDeleted,
	}
}
