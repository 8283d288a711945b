package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/pasar-labs/xiara/server/internal/agent/ambiguity"
	"github.com/pasar-labs/xiara/server/internal/agent/model"
	"github.com/pasar-labs/xiara/server/internal/agent/negotiation"
	"github.com/pasar-labs/xiara/server/internal/agent/profile"
	"github.com/pasar-labs/xiara/server/internal/agent/query"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// contextTurns is how many recent messages feed the generator's context.
const contextTurns = 3

// Orchestrator composes the dialogue pipeline for each incoming turn:
// cache check, negotiation short-circuit, ambiguity/clarification, context
// merge, decomposition, per-sub-query answer generation and assembly.
type Orchestrator struct {
	sessions   model.SessionRepository
	history    model.HistoryRepository
	cache      model.ResponseCache
	generator  model.AnswerGenerator
	classifier *ambiguity.Classifier
	negotiator *negotiation.Negotiator
	profiles   *profile.Manager
	genTimeout time.Duration
	locks      *userLocks
}

type Config struct {
	Sessions   model.SessionRepository
	History    model.HistoryRepository
	Cache      model.ResponseCache
	Generator  model.AnswerGenerator
	Classifier *ambiguity.Classifier
	Negotiator *negotiation.Negotiator
	Profiles   *profile.Manager
	// GenTimeout bounds each sub-query's answer generation. Zero disables the
	// per-sub-query deadline.
	GenTimeout time.Duration
}

func New(cfg Config) *Orchestrator {
	return &Orchestrator{
		sessions:   cfg.Sessions,
		history:    cfg.History,
		cache:      cfg.Cache,
		generator:  cfg.Generator,
		classifier: cfg.Classifier,
		negotiator: cfg.Negotiator,
		profiles:   cfg.Profiles,
		genTimeout: cfg.GenTimeout,
		locks:      newUserLocks(),
	}
}

// Handle processes one user turn end to end.
func (o *Orchestrator) Handle(ctx context.Context, in model.QueryInput) (*model.Reply, error) {
	// Exact-match cache lookup comes before any other processing; a hit skips
	// session and negotiation state entirely. Read failures degrade to a miss.
	if answer, ok, err := o.cache.Get(ctx, in.Query); err == nil && ok {
		return &model.Reply{Response: answer, Cached: true, Product: in.Product}, nil
	} else if err != nil {
		logx.Warn().Err(err).Str("user_id", in.UserID).Str("stage", "cache_lookup").Msg("cache read failed, continuing without it")
	}

	mu := o.locks.lock(in.UserID)
	defer mu.Unlock()

	// Negotiation short-circuits the rest of the pipeline when the request
	// carries product context and the message is negotiation-like.
	if in.Product != nil {
		if intent := negotiation.DetectIntent(in.Query); intent != model.IntentNone {
			response, err := o.negotiator.Respond(ctx, in.UserID, in.Product, intent)
			if err != nil {
				return nil, err
			}
			return &model.Reply{Response: response, IsNegotiating: true, Product: in.Product}, nil
		}
	}

	session, err := o.sessions.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	result := o.classifier.Classify(ctx, in.Query, o.pastUserUtterances(ctx, in.UserID))
	if result.IsAmbiguous {
		// Clarification turns never update last_query or negotiation state.
		reply := ambiguity.Clarify(session, result.Category)
		if err := o.sessions.Save(ctx, session); err != nil {
			logx.Error().Err(err).Str("user_id", in.UserID).Str("stage", "clarification").Msg("failed to persist session")
		}
		return &model.Reply{Response: reply, NeedsClarification: true, Product: in.Product}, nil
	}

	// Non-ambiguous turn: reset the clarification counter before proceeding.
	session.ClarificationAttempts = 0

	effective := query.Merge(in.Query, session.LastQuery)
	session.LastQuery = effective
	if err := o.sessions.Save(ctx, session); err != nil {
		logx.Error().Err(err).Str("user_id", in.UserID).Str("stage", "context_merge").Msg("failed to persist session")
	}

	if err := o.profiles.RecordQuery(ctx, in.UserID, effective); err != nil {
		logx.Warn().Err(err).Str("user_id", in.UserID).Str("stage", "profile").Msg("failed to record query in profile")
	}

	subQueries := query.Decompose(effective)
	conversationContext := o.profiles.Apply(ctx, in.UserID, o.renderContext(ctx, in.UserID))

	answers := make([]string, 0, len(subQueries))
	for _, sq := range subQueries {
		answers = append(answers, o.generateOne(ctx, conversationContext, sq))
	}

	response := o.assemble(ctx, in.Query, subQueries, answers)

	o.recordTurn(ctx, in.UserID, in.Query, response)

	return &model.Reply{Response: response, Product: in.Product}, nil
}

// generateOne answers a single sub-query with its own deadline. A failure is
// rendered inline and never aborts sibling sub-queries.
func (o *Orchestrator) generateOne(ctx context.Context, conversationContext, subQuery string) string {
	genCtx := ctx
	if o.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, o.genTimeout)
		defer cancel()
	}

	answer, err := o.generator.Generate(genCtx, conversationContext, subQuery)
	if err != nil {
		logx.Warn().Err(err).Str("sub_query", subQuery).Str("stage", "generation").Msg("answer generation failed for sub-query")
		return fmt.Sprintf("Sorry, I had trouble with that query: %v", err)
	}

	text := answer.Text
	if len(answer.Snippets) > 0 {
		snippets := answer.Snippets
		if len(snippets) > 2 {
			snippets = snippets[:2]
		}
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n  Related products:\n")
		for _, s := range snippets {
			b.WriteString("  - ")
			b.WriteString(strings.ReplaceAll(strings.TrimSpace(s), "\n", " "))
			b.WriteString("\n")
		}
		text = strings.TrimRight(b.String(), "\n")
	}
	return text
}

// assemble merges the per-sub-query answers. Only multi-part responses are
// cached, keyed by the original raw query text.
func (o *Orchestrator) assemble(ctx context.Context, rawQuery string, subQueries, answers []string) string {
	if len(answers) == 1 {
		return answers[0]
	}

	var b strings.Builder
	b.WriteString("Here's what I found for you:\n\n")
	for i, sq := range subQueries {
		b.WriteString(fmt.Sprintf("For **%s**:\n%s\n\n", sq, answers[i]))
	}
	combined := strings.TrimSpace(b.String())

	if err := o.cache.Set(ctx, rawQuery, combined); err != nil {
		logx.Warn().Err(err).Str("stage", "cache_store").Msg("cache write failed, skipping store")
	}
	return combined
}

// pastUserUtterances returns the user's past turns for the ambiguity
// classifier. History failures degrade to an empty history.
func (o *Orchestrator) pastUserUtterances(ctx context.Context, userID string) []string {
	history, err := o.history.LoadHistory(ctx, userID)
	if err != nil {
		logx.Warn().Err(err).Str("user_id", userID).Str("stage", "history").Msg("failed to load history, classifying without it")
		return nil
	}
	var utterances []string
	for _, msg := range history.Messages {
		if msg != nil && msg.Role == schema.User && msg.Content != "" {
			utterances = append(utterances, msg.Content)
		}
	}
	return utterances
}

// renderContext formats the most recent turns the way the generator expects.
func (o *Orchestrator) renderContext(ctx context.Context, userID string) string {
	history, err := o.history.LoadHistory(ctx, userID)
	if err != nil {
		return ""
	}
	if len(history.Messages) == 0 {
		return ""
	}

	messages := history.Messages
	if len(messages) > contextTurns {
		messages = messages[len(messages)-contextTurns:]
	}

	var lines []string
	for _, msg := range messages {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			lines = append(lines, "User: "+msg.Content)
		case schema.Assistant:
			lines = append(lines, "Xiara: "+msg.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// recordTurn appends the answered exchange to the conversation history.
func (o *Orchestrator) recordTurn(ctx context.Context, userID, userText, assistantText string) {
	if err := o.history.AddMessage(ctx, userID, schema.UserMessage(userText)); err != nil {
		logx.Warn().Err(err).Str("user_id", userID).Str("stage", "history").Msg("failed to record user turn")
	}
	if err := o.history.AddMessage(ctx, userID, schema.AssistantMessage(assistantText, nil)); err != nil {
		logx.Warn().Err(err).Str("user_id", userID).Str("stage", "history").Msg("failed to record assistant turn")
	}
}

// Reset clears the user's dialogue session, negotiation state and history.
// Profiles are kept; preferences outlive a reset. Resetting an unknown user is
// a no-op.
func (o *Orchestrator) Reset(ctx context.Context, userID string) error {
	mu := o.locks.lock(userID)
	defer mu.Unlock()

	if err := o.sessions.Reset(ctx, userID); err != nil {
		return err
	}
	if err := o.negotiator.Reset(ctx, userID); err != nil {
		return err
	}
	if err := o.history.ClearHistory(ctx, userID); err != nil {
		return err
	}
	return nil
}
