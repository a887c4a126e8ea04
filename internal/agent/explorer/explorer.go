// Package explorer implements the destination-clarification sub-dialogue: a
// two-phase machine (clarifying, confirmed) with its own private history,
// independent of the outer conversation log.
package explorer

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/prompts"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

const DefaultMaxTurns = 10

// abandonReply is the wrap-up shown when the sub-dialogue hits its turn cap
// without a concrete destination.
const abandonReply = "We've gone back and forth quite a bit without settling on a place. Let's pause the destination search for now; tell me a concrete city or country whenever you're ready and we'll pick it up from there."

// Clarifier drives the sub-dialogue against its own language model.
type Clarifier struct {
	lm       model.LanguageModelPort
	maxTurns int
}

// New returns a Clarifier. maxTurns <= 0 falls back to DefaultMaxTurns.
func New(lm model.LanguageModelPort, maxTurns int) *Clarifier {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Clarifier{lm: lm, maxTurns: maxTurns}
}

// Outcome is the result of one sub-turn.
type Outcome struct {
	// Reply is the assistant-visible text for this sub-turn.
	Reply string
	// Finished is true once the sub-dialogue is over, whether confirmed or
	// abandoned.
	Finished bool
	// Abandoned is true when the turn cap forced the sub-dialogue closed
	// without a confirmed destination.
	Abandoned bool
	// Destination and Interests are set only on a confirmed finish.
	Destination string
	Interests   string
}

// Advance runs one sub-turn: appends the user's utterance to the private
// history, asks the model, and inspects the reply for a confirmation
// summary. The sub-state is mutated in place; the caller owns merging the
// outcome into the outer trip state.
func (c *Clarifier) Advance(ctx context.Context, sub *model.ExplorerState, userInput string) (*Outcome, error) {
	if sub == nil {
		return nil, errx.New(errx.InconsistentState, "explorer sub-state is nil")
	}
	if sub.Phase == model.ExplorerConfirmed {
		return nil, errx.New(errx.InconsistentState, "explorer already confirmed")
	}

	systemPrompt, err := prompts.RenderExplorerSystem(ctx)
	if err != nil {
		return nil, err
	}

	if userInput == "" {
		userInput = "Help me decide where to travel."
	}
	sub.Messages = append(sub.Messages, schema.UserMessage(userInput))
	sub.Turns++

	reply, err := c.lm.Complete(ctx, systemPrompt, sub.Messages)
	if err != nil {
		return nil, err
	}
	sub.Messages = append(sub.Messages, reply)

	if destination, interests, ok := ParseConfirmation(reply.Content); ok {
		sub.Phase = model.ExplorerConfirmed
		logx.Debug().
			Str("destination", destination).
			Str("interests", interests).
			Int("sub_turns", sub.Turns).
			Msg("Destination explorer confirmed")
		return &Outcome{
			Reply:       reply.Content,
			Finished:    true,
			Destination: destination,
			Interests:   interests,
		}, nil
	}

	if sub.Turns >= c.maxTurns {
		logx.Warn().
			Int("sub_turns", sub.Turns).
			Int("max_turns", c.maxTurns).
			Msg("Destination explorer turn cap hit; abandoning clarification")
		return &Outcome{
			Reply:     abandonReply,
			Finished:  true,
			Abandoned: true,
		}, nil
	}

	return &Outcome{Reply: reply.Content}, nil
}
