package messenger

// Sender actions understood by the send API.
const (
	ActionTypingOn  = "typing_on"
	ActionTypingOff = "typing_off"
	ActionMarkSeen  = "mark_seen"
)

// Template types understood by the send API.
const (
	TemplateTypeButton  = "button"
	TemplateTypeGeneric = "generic"
	TemplateTypeReceipt = "receipt"
)

// SendRequest is the wire shape of one send API call: a recipient plus
// exactly one of Message or SenderAction. No batching.
type SendRequest struct {
	Recipient    Principal        `json:"recipient"`
	Message      *OutboundMessage `json:"message,omitempty"`
	SenderAction string           `json:"sender_action,omitempty"`
}

// MessageType returns a label describing the payload variant, used for
// metrics and logging.
func (r SendRequest) MessageType() string {
	switch {
	case r.SenderAction != "":
		return "sender_action"
	case r.Message == nil:
		return "empty"
	case r.Message.Attachment != nil:
		return "template_" + r.Message.Attachment.Payload.TemplateType
	case len(r.Message.QuickReplies) > 0:
		return "quick_reply"
	default:
		return "text"
	}
}

// OutboundMessage is the message body of a send request.
type OutboundMessage struct {
	Text         string              `json:"text,omitempty"`
	Attachment   *TemplateAttachment `json:"attachment,omitempty"`
	QuickReplies []QuickReply        `json:"quick_replies,omitempty"`
}

// TemplateAttachment wraps a structured template payload.
type TemplateAttachment struct {
	Type    string          `json:"type"`
	Payload TemplatePayload `json:"payload"`
}

// TemplatePayload is the union of button, generic and receipt template
// payloads; unused fields stay empty and are omitted on the wire.
type TemplatePayload struct {
	TemplateType string `json:"template_type"`

	// Button template
	Text    string   `json:"text,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`

	// Generic and receipt templates
	Elements []Element `json:"elements,omitempty"`

	// Receipt template
	RecipientName string          `json:"recipient_name,omitempty"`
	OrderNumber   string          `json:"order_number,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	OrderURL      string          `json:"order_url,omitempty"`
	Timestamp     int64           `json:"timestamp,omitempty"`
	Address       *Address        `json:"address,omitempty"`
	Summary       *ReceiptSummary `json:"summary,omitempty"`
}

// Button is a template button (postback or web_url).
type Button struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// Element is a column of a generic template or a line item of a receipt.
type Element struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	ItemURL  string   `json:"item_url,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`

	// Receipt line item fields
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// Address is the shipping address block of a receipt.
type Address struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// ReceiptSummary carries the money totals of a receipt. Subtotal, tax and
// total are independently rounded; they are not derived from each other.
type ReceiptSummary struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalTax     float64 `json:"total_tax"`
	TotalCost    float64 `json:"total_cost"`
}

// QuickReply is a tappable suggested-reply chip.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Payload     string `json:"payload,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// SendResponse is the send API success body.
type SendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// ErrorResponse is the send API failure body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one send API error.
type ErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode"`
	FBTraceID string `json:"fbtrace_id"`
}
