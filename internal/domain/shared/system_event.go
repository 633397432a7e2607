package shared

// EventTypeSystemError is emitted by the bus when a subscriber fails.
const EventTypeSystemError = "SystemErrorOccurred"

// SystemErrorEvent reports a handler failure during event dispatch. It is
// observable like any other event so that alerting can subscribe to it,
// but a failing SystemErrorEvent handler never produces another one.
type SystemErrorEvent struct {
	BaseDomainEvent
	FailedEventType string `json:"failed_event_type"`
	FailedEventID   string `json:"failed_event_id"`
	HandlerError    string `json:"handler_error"`
}

// NewSystemErrorEvent wraps a handler failure for re-emission
func NewSystemErrorEvent(failed DomainEvent, handlerErr error) *SystemErrorEvent {
	return &SystemErrorEvent{
		BaseDomainEvent: NewBaseDomainEvent(EventTypeSystemError, failed.AggregateType(), failed.AggregateID(), failed.CompanyID()),
		FailedEventType: failed.EventType(),
		FailedEventID:   failed.EventID().String(),
		HandlerError:    handlerErr.Error(),
	}
}

var _ DomainEvent = (*SystemErrorEvent)(nil)
