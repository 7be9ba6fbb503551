// Package messenger defines the Messenger platform wire types: inbound
// webhook callbacks, the classified event model, and outbound send API
// payloads with their builders.
package messenger

import "encoding/json"

// Callback is the body of a webhook POST.
// One callback may carry multiple page entries, each with multiple
// messaging events.
type Callback struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one page entry inside a callback.
type Entry struct {
	ID        string      `json:"id"`
	Time      int64       `json:"time"`
	Messaging []Messaging `json:"messaging"`
}

// Messaging is one raw messaging event. Exactly one of the variant fields
// (Optin, Message, Postback) is expected to be set; Classify resolves which.
type Messaging struct {
	Sender    Principal `json:"sender"`
	Recipient Principal `json:"recipient"`
	Timestamp int64     `json:"timestamp"`

	Optin    *Optin    `json:"optin,omitempty"`
	Message  *Message  `json:"message,omitempty"`
	Postback *Postback `json:"postback,omitempty"`
}

// Principal identifies a conversation party by page-scoped ID.
type Principal struct {
	ID string `json:"id"`
}

// Optin is the authentication/opt-in event payload. Ref is the opaque
// pass-through parameter supplied at plugin render time.
type Optin struct {
	Ref string `json:"ref,omitempty"`
}

// Message is an inbound message payload. Echoes of the bot's own outbound
// messages arrive on the same stream with IsEcho set.
type Message struct {
	MID         string              `json:"mid,omitempty"`
	Text        string              `json:"text,omitempty"`
	Attachments []InboundAttachment `json:"attachments,omitempty"`
	QuickReply  *QuickReplyPayload  `json:"quick_reply,omitempty"`
	IsEcho      bool                `json:"is_echo,omitempty"`
	AppID       int64               `json:"app_id,omitempty"`
}

// InboundAttachment is an attachment on an inbound message. The payload is
// kept opaque; the bot only acknowledges attachments.
type InboundAttachment struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// QuickReplyPayload carries the developer-defined payload of a tapped
// quick-reply chip.
type QuickReplyPayload struct {
	Payload string `json:"payload"`
}

// Postback carries the developer-defined payload of a tapped template button.
type Postback struct {
	Payload string `json:"payload"`
}
