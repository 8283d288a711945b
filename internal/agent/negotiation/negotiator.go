package negotiation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

const (
	// targetRatio fixes the target price at 85% of the original.
	targetRatio = 0.85
	// discountStep grows the discount per accepted "discount" turn.
	discountStep = 0.05
	// bargainStep grows the discount per accepted "bargain" turn.
	bargainStep = 0.07
	// maxDiscount caps the total discount fraction.
	maxDiscount = 0.30
	// maxDiscountAttempts is how many discount turns we grant before deferring
	// to the seller.
	maxDiscountAttempts = 3
)

// intentKeywords is evaluated in order; the first intent with a matching
// keyword wins. The order is part of the contract.
var intentKeywords = []struct {
	intent   model.NegotiationIntent
	keywords []string
}{
	{model.IntentDiscount, []string{"discount", "cheaper", "lower price", "better price", "deal", "offer"}},
	{model.IntentBargain, []string{"negotiate", "bargain", "reduce", "cut price", "best price"}},
	{model.IntentInquiry, []string{"how much", "price", "cost", "pricing"}},
}

// Negotiator drives per-user price negotiation over a repository of
// negotiation states.
type Negotiator struct {
	repo model.NegotiationRepository
}

func NewNegotiator(repo model.NegotiationRepository) *Negotiator {
	return &Negotiator{repo: repo}
}

// DetectIntent classifies a free-text message. Returns IntentNone when the
// message is not negotiation-like.
func DetectIntent(message string) model.NegotiationIntent {
	lowered := strings.ToLower(message)
	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lowered, kw) {
				return group.intent
			}
		}
	}
	return model.IntentNone
}

// Respond advances the negotiation for the user and returns the reply.
// The product context is a precondition: a missing product ID or non-positive
// price is an error, never silently defaulted.
func (n *Negotiator) Respond(ctx context.Context, userID string, product *model.ProductContext, intent model.NegotiationIntent) (string, error) {
	if product == nil || product.ProductID == "" || product.Price <= 0 {
		return "", fmt.Errorf("negotiation requires product context with a positive price")
	}

	state, err := n.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if state == nil {
		state = &model.NegotiationState{
			ProductID:     product.ProductID,
			OriginalPrice: product.Price,
			TargetPrice:   product.Price * targetRatio,
			CurrentOffer:  product.Price,
			Attempts:      0,
			LastUpdate:    time.Now(),
		}
		if err := n.repo.Save(ctx, userID, state); err != nil {
			return "", err
		}
	}

	switch intent {
	case model.IntentInquiry:
		return fmt.Sprintf("The current price is $%.2f. Would you like to discuss a better price?", state.CurrentOffer), nil

	case model.IntentDiscount:
		if state.Attempts >= maxDiscountAttempts {
			return "I'll need to check with the seller for any additional discounts. Would you like me to do that?", nil
		}
		discount := n.applyOffer(ctx, userID, state, discountStep)
		return fmt.Sprintf("I can offer you a special price of $%.2f. That's a %.0f%% discount!", state.CurrentOffer, discount*100), nil

	case model.IntentBargain:
		if state.CurrentOffer <= state.TargetPrice {
			return "This is already our best possible price. Would you like to proceed with the purchase?", nil
		}
		n.applyOffer(ctx, userID, state, bargainStep)
		return fmt.Sprintf("I understand you're looking for a better deal. I can offer it at $%.2f. How does that sound?", state.CurrentOffer), nil

	default:
		return "", fmt.Errorf("message carries no negotiation intent")
	}
}

// applyOffer computes the next offer from the original price (never compounded
// on the current offer), mutates the state and persists it. Returns the
// discount fraction applied.
func (n *Negotiator) applyOffer(ctx context.Context, userID string, state *model.NegotiationState, step float64) float64 {
	discount := step * float64(state.Attempts+1)
	if discount > maxDiscount {
		discount = maxDiscount
	}
	state.CurrentOffer = state.OriginalPrice * (1 - discount)
	state.Attempts++
	state.LastUpdate = time.Now()
	if err := n.repo.Save(ctx, userID, state); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to persist negotiation state")
	}
	return discount
}

// Reset deletes the user's negotiation state; the next negotiation turn
// recreates it fresh. Resetting absent state is a no-op.
func (n *Negotiator) Reset(ctx context.Context, userID string) error {
	return n.repo.Delete(ctx, userID)
}
