package messenger

// EventKind tags the classified shape of a messaging event.
type EventKind int

// Recognized event kinds, in classification order.
const (
	EventUnknown EventKind = iota
	EventOptin
	EventMessage
	EventPostback
)

// String returns the metric/log label for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventOptin:
		return "optin"
	case EventMessage:
		return "message"
	case EventPostback:
		return "postback"
	default:
		return "unknown"
	}
}

// Event is a classified inbound event. It is constructed once per messaging
// event, consumed synchronously by the responder, then discarded.
type Event struct {
	Kind        EventKind
	SenderID    string
	RecipientID string
	Timestamp   int64 // epoch milliseconds

	// Variant payloads; only the one matching Kind is set.
	Optin    *Optin
	Message  *Message
	Postback *Postback
}

// Classify determines which event kind a raw messaging event represents.
// Decision order, first match wins: optin, message, postback. Anything else
// is Unknown and produces no reply.
func Classify(m Messaging) Event {
	ev := Event{
		Kind:        EventUnknown,
		SenderID:    m.Sender.ID,
		RecipientID: m.Recipient.ID,
		Timestamp:   m.Timestamp,
	}

	switch {
	case m.Optin != nil:
		ev.Kind = EventOptin
		ev.Optin = m.Optin
	case m.Message != nil:
		ev.Kind = EventMessage
		ev.Message = m.Message
	case m.Postback != nil:
		ev.Kind = EventPostback
		ev.Postback = m.Postback
	}

	return ev
}
