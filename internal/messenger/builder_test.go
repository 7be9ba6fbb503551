package messenger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextMessage(t *testing.T) {
	req := NewTextMessage("user_1", "hello")

	assert.Equal(t, "user_1", req.Recipient.ID)
	require.NotNil(t, req.Message)
	assert.Equal(t, "hello", req.Message.Text)
	assert.Empty(t, req.SenderAction)
	assert.Equal(t, "text", req.MessageType())
}

func TestNewTextMessage_ClampsLength(t *testing.T) {
	req := NewTextMessage("user_1", strings.Repeat("a", MaxTextLength+50))
	assert.LessOrEqual(t, len(req.Message.Text), MaxTextLength)
	assert.True(t, strings.HasSuffix(req.Message.Text, "..."))
}

func TestNewSenderAction(t *testing.T) {
	req := NewSenderAction("user_1", ActionTypingOn)

	assert.Equal(t, ActionTypingOn, req.SenderAction)
	assert.Nil(t, req.Message)
	assert.Equal(t, "sender_action", req.MessageType())

	// Exactly one recipient, exactly one payload variant on the wire.
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"message"`)
}

func TestNewGenericTemplate_ClampsElements(t *testing.T) {
	elements := make([]Element, MaxGenericElements+4)
	for i := range elements {
		elements[i] = Element{Title: "e"}
	}

	req := NewGenericTemplate("user_1", elements)
	require.NotNil(t, req.Message.Attachment)
	assert.Equal(t, TemplateTypeGeneric, req.Message.Attachment.Payload.TemplateType)
	assert.Len(t, req.Message.Attachment.Payload.Elements, MaxGenericElements)
	assert.Equal(t, "template_generic", req.MessageType())
}

func TestNewButtonTemplate_ClampsButtons(t *testing.T) {
	buttons := []Button{
		NewPostbackButton("a", "p1"),
		NewPostbackButton("b", "p2"),
		NewURLButton("c", "https://example.com"),
		NewPostbackButton("d", "p4"),
	}

	req := NewButtonTemplate("user_1", "pick one", buttons)
	assert.Len(t, req.Message.Attachment.Payload.Buttons, MaxTemplateButtons)
	assert.Equal(t, TemplateTypeButton, req.Message.Attachment.Payload.TemplateType)
}

func TestNewReceiptTemplate_WireShape(t *testing.T) {
	req := NewReceiptTemplate("user_1", ReceiptParams{
		RecipientName: "Customer",
		OrderNumber:   "order-42",
		Currency:      "USD",
		PaymentMethod: "Visa 1234",
		Elements: []Element{
			{Title: "Cheese Pizza", Quantity: 1, Price: 4.99, Currency: "USD"},
		},
		Summary: ReceiptSummary{Subtotal: 4.99, TotalTax: 0.65, TotalCost: 5.64},
	})

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	payload := decoded["message"].(map[string]any)["attachment"].(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, "receipt", payload["template_type"])
	assert.Equal(t, "order-42", payload["order_number"])

	summary := payload["summary"].(map[string]any)
	assert.InDelta(t, 4.99, summary["subtotal"], 0.001)
	assert.InDelta(t, 0.65, summary["total_tax"], 0.001)
	assert.InDelta(t, 5.64, summary["total_cost"], 0.001)
}

func TestNewQuickReplyMessage_ClampsReplies(t *testing.T) {
	replies := make([]QuickReply, MaxQuickReplies+2)
	for i := range replies {
		replies[i] = QuickReply{ContentType: "text", Title: "t", Payload: "p"}
	}

	req := NewQuickReplyMessage("user_1", "choose", replies)
	assert.Len(t, req.Message.QuickReplies, MaxQuickReplies)
	assert.Equal(t, "quick_reply", req.MessageType())
}
