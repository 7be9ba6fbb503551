// Package bot contains the message responder: given a classified inbound
// event it decides which outbound messages to produce. Decisions are pure
// apart from logging; no network is touched here.
package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chowbot/chowbot-go/internal/catalog"
	"github.com/chowbot/chowbot-go/internal/logger"
	"github.com/chowbot/chowbot-go/internal/messenger"
)

// Fixed reply texts.
const (
	textOptinConfirm    = "Thanks for opting in! Tell me when you're hungry and I'll find you something good."
	textQuickReplyAck   = "Got it! Give me a moment."
	textAttachmentAck   = "Nice attachment!"
	textNoMatch         = "I'm not sure what you mean. Try telling me you're hungry!"
	textRestaurantAck   = "Great choice! Here's what they have:"
	textItemAck         = "Excellent choice! Here's your receipt:"
	textUnknownPostback = "Sorry, I couldn't understand that tap. Try the menu again."
)

// Postback payload grammar.
const (
	postbackRestaurantPrefix = "restaurant"
	postbackItemPrefix       = "item"
	postbackItemFieldCount   = 4 // item|<name>|<price>|<image_url>
)

const taxRate = 0.13

// Responder maps classified inbound events to outbound send requests.
type Responder struct {
	assetURL func(string) string
	logger   *logger.Logger
	now      func() time.Time
	orderID  func() string
}

// NewResponder creates a responder. assetURL joins a relative asset path
// with the configured public base URL.
func NewResponder(assetURL func(string) string, log *logger.Logger) *Responder {
	return &Responder{
		assetURL: assetURL,
		logger:   log.WithModule("responder"),
		now:      time.Now,
		orderID:  uuid.NewString,
	}
}

// Respond returns the outbound messages for one classified event, in send
// order. Sender actions (mark_seen, typing_on) are included when a reply is
// produced. A nil result means the event gets no reply.
func (r *Responder) Respond(ev messenger.Event) []messenger.SendRequest {
	switch ev.Kind {
	case messenger.EventOptin:
		r.logger.WithField("ref", ev.Optin.Ref).Info("Received authentication opt-in")
		return r.withIndicators(ev.SenderID,
			messenger.NewTextMessage(ev.SenderID, textOptinConfirm))

	case messenger.EventMessage:
		return r.respondMessage(ev)

	case messenger.EventPostback:
		return r.respondPostback(ev)

	default:
		r.logger.WithField("sender_id", ev.SenderID).
			WithField("timestamp_ms", ev.Timestamp).
			Warn("Unknown event shape, no reply")
		return nil
	}
}

func (r *Responder) respondMessage(ev messenger.Event) []messenger.SendRequest {
	msg := ev.Message

	// Echoes of our own outbound messages come back on the inbound stream;
	// replying to them would loop forever.
	if msg.IsEcho {
		r.logger.WithField("mid", msg.MID).
			WithField("app_id", msg.AppID).
			Debug("Echo message, skipping")
		return nil
	}

	if msg.QuickReply != nil {
		// TODO: route quick-reply payloads through the postback grammar so
		// chips can trigger orders directly.
		r.logger.WithField("payload", msg.QuickReply.Payload).Info("Quick reply received")
		return r.withIndicators(ev.SenderID,
			messenger.NewTextMessage(ev.SenderID, textQuickReplyAck))
	}

	if msg.Text != "" {
		if matchesFoodKeyword(msg.Text) {
			return r.withIndicators(ev.SenderID,
				messenger.NewGenericTemplate(ev.SenderID, r.restaurantElements()))
		}
		return r.withIndicators(ev.SenderID,
			messenger.NewTextMessage(ev.SenderID, textNoMatch))
	}

	if len(msg.Attachments) > 0 {
		return r.withIndicators(ev.SenderID,
			messenger.NewTextMessage(ev.SenderID, textAttachmentAck))
	}

	r.logger.WithField("mid", msg.MID).Debug("Message with no text, attachment or quick reply")
	return nil
}

func (r *Responder) respondPostback(ev messenger.Event) []messenger.SendRequest {
	payload := strings.TrimSpace(ev.Postback.Payload)
	if payload == "" {
		r.logger.WithField("sender_id", ev.SenderID).Warn("Empty postback payload")
		return nil
	}

	r.logger.WithField("payload", payload).Debug("Received postback")

	switch {
	case strings.HasPrefix(payload, postbackRestaurantPrefix):
		return r.respondRestaurant(ev.SenderID, payload)
	case strings.HasPrefix(payload, postbackItemPrefix):
		return r.respondItemOrder(ev.SenderID, payload)
	default:
		return r.withIndicators(ev.SenderID,
			messenger.NewTextMessage(ev.SenderID, textUnknownPostback))
	}
}

// respondRestaurant sends a menu carousel for the restaurant whose catalog
// key is the exact postback payload.
func (r *Responder) respondRestaurant(senderID, payload string) []messenger.SendRequest {
	restaurant, ok := catalog.Lookup(payload)
	if !ok {
		r.logger.WithField("payload", payload).Warn("Restaurant postback with no catalog entry")
		return r.withIndicators(senderID,
			messenger.NewTextMessage(senderID, textUnknownPostback))
	}

	elements := make([]messenger.Element, 0, len(restaurant.Items))
	for _, item := range restaurant.Items {
		imageURL := r.assetURL(item.ImagePath)
		elements = append(elements, messenger.Element{
			Title:    item.Title,
			Subtitle: "$" + item.Price,
			ImageURL: imageURL,
			Buttons: []messenger.Button{
				messenger.NewPostbackButton("Order", strings.Join([]string{
					postbackItemPrefix, item.Title, item.Price, imageURL,
				}, "|")),
			},
		})
	}

	return r.withIndicators(senderID,
		messenger.NewTextMessage(senderID, textRestaurantAck),
		messenger.NewGenericTemplate(senderID, elements),
	)
}

// respondItemOrder parses "item|<name>|<price>|<image_url>" and sends a
// receipt. Malformed payloads produce the unrecognized-tap text, never a
// crash.
func (r *Responder) respondItemOrder(senderID, payload string) []messenger.SendRequest {
	fields := strings.Split(payload, "|")
	if len(fields) != postbackItemFieldCount {
		r.logger.WithField("payload", payload).
			WithField("field_count", len(fields)).
			Warn("Malformed item postback payload")
		return r.withIndicators(senderID,
			messenger.NewTextMessage(senderID, textUnknownPostback))
	}

	name, priceStr, imageURL := fields[1], fields[2], fields[3]
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		r.logger.WithError(err).WithField("price", priceStr).Warn("Item postback with unparseable price")
		return r.withIndicators(senderID,
			messenger.NewTextMessage(senderID, textUnknownPostback))
	}

	receipt := messenger.NewReceiptTemplate(senderID, messenger.ReceiptParams{
		RecipientName: "ChowBot Customer",
		OrderNumber:   r.orderID(),
		Currency:      "USD",
		PaymentMethod: "Visa 1234",
		OrderURL:      r.assetURL(""),
		Timestamp:     r.now().Unix(),
		Address: &messenger.Address{
			Street1:    "160 University Ave W",
			City:       "Waterloo",
			PostalCode: "N2L 3E9",
			State:      "ON",
			Country:    "CA",
		},
		Elements: []messenger.Element{
			{
				Title:    name,
				Subtitle: "Fresh and hot",
				Quantity: 1,
				Price:    price,
				Currency: "USD",
				ImageURL: imageURL,
			},
		},
		Summary: receiptSummary(price),
	})

	return r.withIndicators(senderID,
		messenger.NewTextMessage(senderID, textItemAck),
		receipt,
	)
}

// receiptSummary computes the money block for a single-item order. Tax and
// total are rounded independently from the subtotal, so subtotal+tax can be
// a cent off from total. Known behavior, not corrected.
func receiptSummary(price float64) messenger.ReceiptSummary {
	return messenger.ReceiptSummary{
		Subtotal:  round2(price),
		TotalTax:  round2(price * taxRate),
		TotalCost: round2(price * (1 + taxRate)),
	}
}

// restaurantElements builds the top-level restaurant carousel.
func (r *Responder) restaurantElements() []messenger.Element {
	all := catalog.Restaurants()
	elements := make([]messenger.Element, 0, len(all))
	for _, restaurant := range all {
		elements = append(elements, messenger.Element{
			Title:    restaurant.Name,
			Subtitle: restaurant.Subtitle,
			ImageURL: r.assetURL(restaurant.ImagePath),
			Buttons: []messenger.Button{
				messenger.NewPostbackButton("View Menu", restaurant.Key),
			},
		})
	}
	return elements
}

// withIndicators prefixes replies with mark_seen and typing_on so the user
// sees activity while sends are in flight.
func (r *Responder) withIndicators(senderID string, replies ...messenger.SendRequest) []messenger.SendRequest {
	out := make([]messenger.SendRequest, 0, len(replies)+2)
	out = append(out,
		messenger.NewSenderAction(senderID, messenger.ActionMarkSeen),
		messenger.NewSenderAction(senderID, messenger.ActionTypingOn),
	)
	return append(out, replies...)
}
