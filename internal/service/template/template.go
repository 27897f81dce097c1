package template

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/errs"
)

// Several variants per message type so repeated campaigns do not trip
// carrier spam heuristics with identical bodies.
var templates = map[domain.MessageType][]string{
	domain.MessageTypeFollowUp: {
		"Hi {name}! We found you an exclusive insurance quote. Check it out: {quote_link}",
		"Hello {name}, your personalized insurance quote is ready! View it here: {quote_link}",
		"{name}, we've prepared a custom insurance quote just for you: {quote_link}",
		"Hi {name}! Your insurance quote comparison is complete. See savings: {quote_link}",
		"Hello {name}, exclusive insurance rates available for you: {quote_link}",
	},
	domain.MessageTypeUrgent: {
		"{name}, your quote expires soon! Don't miss out: {quote_link}",
		"Limited time: Your insurance quote is ready {name}! {quote_link}",
		"{name}, exclusive rates ending soon. View now: {quote_link}",
		"Time sensitive: {name}, your personalized quote awaits: {quote_link}",
		"{name}, your insurance quote review deadline is approaching: {quote_link}",
	},
	domain.MessageTypeLastChance: {
		"FINAL NOTICE {name}: Your insurance quote expires today! {quote_link}",
		"LAST CHANCE {name}: Exclusive rates expire midnight! {quote_link}",
		"{name}, this is your final insurance quote reminder: {quote_link}",
		"EXPIRES TODAY {name}: Your personalized insurance quote: {quote_link}",
		"{name}, final opportunity for these insurance rates: {quote_link}",
	},
}

// Service renders personalized message bodies. Custom messages are
// caller-supplied verbatim and never pass through here.
type Service interface {
	Render(messageType domain.MessageType, firstName, qfCode string) (string, error)
}

type service struct {
	baseURL string
}

func NewService(baseURL string) Service {
	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *service) Render(messageType domain.MessageType, firstName, qfCode string) (string, error) {
	variants, ok := templates[messageType]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownMessageType, messageType)
	}
	// Top-level rand is safe for the concurrent dispatches calling Render.
	tmpl := variants[rand.Intn(len(variants))]

	quoteLink := fmt.Sprintf("%s/quote/%s", s.baseURL, qfCode)
	body := strings.ReplaceAll(tmpl, "{name}", firstName)
	body = strings.ReplaceAll(body, "{quote_link}", quoteLink)
	return body, nil
}
