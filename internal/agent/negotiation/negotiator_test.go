package negotiation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	"github.com/pasar-labs/xiara/server/internal/agent/repo"
)

func testProduct() *model.ProductContext {
	return &model.ProductContext{ProductID: "p-100", Price: 100.0, Name: "Leather Boots"}
}

func newTestNegotiator() *Negotiator {
	return NewNegotiator(repo.NewMemoryNegotiationRepository())
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		intent  model.NegotiationIntent
	}{
		{"Can I get this cheaper?", model.IntentDiscount},
		{"Any discount for me?", model.IntentDiscount},
		{"Let's negotiate the price", model.IntentBargain},
		{"can you cut price a bit", model.IntentBargain},
		{"How much does it cost?", model.IntentInquiry},
		{"what is the pricing", model.IntentInquiry},
		{"I love this product", model.IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.intent, DetectIntent(tt.message))
		})
	}
}

func TestDetectIntent_DiscountWinsOverInquiry(t *testing.T) {
	// "better price" and "price" both match; discount keywords run first
	assert.Equal(t, model.IntentDiscount, DetectIntent("is there a better price?"))
}

func TestRespond_Inquiry(t *testing.T) {
	n := newTestNegotiator()
	ctx := context.Background()

	response, err := n.Respond(ctx, "u1", testProduct(), model.IntentInquiry)
	require.NoError(t, err)
	assert.Contains(t, response, "current price is $100.00")
	assert.Contains(t, response, "discuss a better price")

	// inquiry must not mutate the offer ladder
	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentInquiry)
	require.NoError(t, err)
	assert.Contains(t, response, "$100.00")
}

func TestRespond_DiscountLadder(t *testing.T) {
	n := newTestNegotiator()
	ctx := context.Background()

	response, err := n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)
	assert.Contains(t, response, "$95.00")
	assert.Contains(t, response, "5% discount")

	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)
	assert.Contains(t, response, "$90.00")
	assert.Contains(t, response, "10% discount")

	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)
	assert.Contains(t, response, "$85.00")
	assert.Contains(t, response, "15% discount")

	// fourth attempt defers to the seller and does not move the offer
	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)
	assert.Contains(t, response, "check with the seller")

	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentInquiry)
	require.NoError(t, err)
	assert.Contains(t, response, "$85.00")
}

func TestRespond_BargainFirstOffer(t *testing.T) {
	n := newTestNegotiator()

	response, err := n.Respond(context.Background(), "u2", testProduct(), model.IntentBargain)
	require.NoError(t, err)
	assert.Contains(t, response, "$93.00")
	assert.Contains(t, response, "better deal")
}

func TestRespond_BargainStopsAtTargetPrice(t *testing.T) {
	n := newTestNegotiator()
	ctx := context.Background()

	// three discount turns land exactly on the 85.00 target
	for i := 0; i < 3; i++ {
		_, err := n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
		require.NoError(t, err)
	}

	response, err := n.Respond(ctx, "u1", testProduct(), model.IntentBargain)
	require.NoError(t, err)
	assert.Contains(t, response, "already our best possible price")

	// the floor reply must not move the offer
	response, err = n.Respond(ctx, "u1", testProduct(), model.IntentInquiry)
	require.NoError(t, err)
	assert.Contains(t, response, "$85.00")
}

func TestRespond_DiscountNeverExceedsCap(t *testing.T) {
	n := NewNegotiator(repo.NewMemoryNegotiationRepository())
	ctx := context.Background()

	// seed a state with enough prior attempts that the raw bargain step
	// (0.07 * 6 = 42%) would blow past the cap if uncapped
	state := &model.NegotiationState{
		ProductID:     "p-100",
		OriginalPrice: 100.0,
		TargetPrice:   60.0,
		CurrentOffer:  100.0,
		Attempts:      5,
	}
	require.NoError(t, n.repo.Save(ctx, "u3", state))

	response, err := n.Respond(ctx, "u3", testProduct(), model.IntentBargain)
	require.NoError(t, err)
	assert.Contains(t, response, "$70.00")

	final, err := n.repo.Get(ctx, "u3")
	require.NoError(t, err)
	assert.InDelta(t, 70.0, final.CurrentOffer, 0.001, "discount fraction must stay within the 30%% cap")
}

func TestRespond_MissingProductContext(t *testing.T) {
	n := newTestNegotiator()

	_, err := n.Respond(context.Background(), "u1", nil, model.IntentDiscount)
	assert.Error(t, err)

	_, err = n.Respond(context.Background(), "u1", &model.ProductContext{ProductID: "p", Price: 0}, model.IntentDiscount)
	assert.Error(t, err)
}

func TestReset_Idempotent(t *testing.T) {
	n := newTestNegotiator()
	ctx := context.Background()

	_, err := n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)

	require.NoError(t, n.Reset(ctx, "u1"))
	require.NoError(t, n.Reset(ctx, "u1"), "resetting absent state is a no-op")

	// a fresh negotiation starts the ladder over
	response, err := n.Respond(ctx, "u1", testProduct(), model.IntentDiscount)
	require.NoError(t, err)
	assert.Contains(t, response, "$95.00")
}
