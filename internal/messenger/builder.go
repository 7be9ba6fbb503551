package messenger

// Builders are pure construction functions, one per outbound variant. They
// take a recipient ID plus the minimal parameters for the variant and return
// a fully-formed SendRequest. No network or mutable state is touched here.
//
// Platform limits are clamped at construction time so callers never produce
// a payload the send API would reject.

// Platform payload limits.
const (
	MaxTextLength       = 2000 // characters per text message
	MaxGenericElements  = 10   // columns per generic template
	MaxTemplateButtons  = 3    // buttons per button template or element
	MaxQuickReplies     = 13   // chips per message
	MaxButtonTextLength = 640  // characters in a button template body
)

// NewSenderAction creates a typing/read indicator request.
func NewSenderAction(recipientID, action string) SendRequest {
	return SendRequest{
		Recipient:    Principal{ID: recipientID},
		SenderAction: action,
	}
}

// NewTextMessage creates a plain text message.
func NewTextMessage(recipientID, text string) SendRequest {
	if len(text) > MaxTextLength {
		text = truncate(text, MaxTextLength)
	}
	return SendRequest{
		Recipient: Principal{ID: recipientID},
		Message:   &OutboundMessage{Text: text},
	}
}

// NewButtonTemplate creates a button template message.
func NewButtonTemplate(recipientID, text string, buttons []Button) SendRequest {
	if len(buttons) > MaxTemplateButtons {
		buttons = buttons[:MaxTemplateButtons]
	}
	if len(text) > MaxButtonTextLength {
		text = truncate(text, MaxButtonTextLength)
	}
	return SendRequest{
		Recipient: Principal{ID: recipientID},
		Message: &OutboundMessage{
			Attachment: &TemplateAttachment{
				Type: "template",
				Payload: TemplatePayload{
					TemplateType: TemplateTypeButton,
					Text:         text,
					Buttons:      buttons,
				},
			},
		},
	}
}

// NewGenericTemplate creates a generic (carousel) template message.
func NewGenericTemplate(recipientID string, elements []Element) SendRequest {
	if len(elements) > MaxGenericElements {
		elements = elements[:MaxGenericElements]
	}
	for i := range elements {
		if len(elements[i].Buttons) > MaxTemplateButtons {
			elements[i].Buttons = elements[i].Buttons[:MaxTemplateButtons]
		}
	}
	return SendRequest{
		Recipient: Principal{ID: recipientID},
		Message: &OutboundMessage{
			Attachment: &TemplateAttachment{
				Type: "template",
				Payload: TemplatePayload{
					TemplateType: TemplateTypeGeneric,
					Elements:     elements,
				},
			},
		},
	}
}

// ReceiptParams holds the inputs for a receipt template.
type ReceiptParams struct {
	RecipientName string
	OrderNumber   string
	Currency      string
	PaymentMethod string
	OrderURL      string
	Timestamp     int64
	Address       *Address
	Elements      []Element
	Summary       ReceiptSummary
}

// NewReceiptTemplate creates an order receipt message.
func NewReceiptTemplate(recipientID string, params ReceiptParams) SendRequest {
	return SendRequest{
		Recipient: Principal{ID: recipientID},
		Message: &OutboundMessage{
			Attachment: &TemplateAttachment{
				Type: "template",
				Payload: TemplatePayload{
					TemplateType:  TemplateTypeReceipt,
					RecipientName: params.RecipientName,
					OrderNumber:   params.OrderNumber,
					Currency:      params.Currency,
					PaymentMethod: params.PaymentMethod,
					OrderURL:      params.OrderURL,
					Timestamp:     params.Timestamp,
					Address:       params.Address,
					Elements:      params.Elements,
					Summary:       &params.Summary,
				},
			},
		},
	}
}

// NewQuickReplyMessage creates a text message with quick-reply chips.
func NewQuickReplyMessage(recipientID, text string, replies []QuickReply) SendRequest {
	if len(replies) > MaxQuickReplies {
		replies = replies[:MaxQuickReplies]
	}
	if len(text) > MaxTextLength {
		text = truncate(text, MaxTextLength)
	}
	return SendRequest{
		Recipient: Principal{ID: recipientID},
		Message: &OutboundMessage{
			Text:         text,
			QuickReplies: replies,
		},
	}
}

// NewPostbackButton creates a postback button carrying a developer payload.
func NewPostbackButton(title, payload string) Button {
	return Button{Type: "postback", Title: title, Payload: payload}
}

// NewURLButton creates a web_url button.
func NewURLButton(title, url string) Button {
	return Button{Type: "web_url", Title: title, URL: url}
}

// truncate shortens s to at most limit bytes, appending an ellipsis.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && (s[cut]&0xC0) == 0x80 {
		cut-- // don't split a UTF-8 sequence
	}
	return s[:cut] + "..."
}
