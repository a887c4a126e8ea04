// Package router owns the per-turn control loop of the trip-planning
// assistant: it decides which step runs next, merges step output into the
// trip state, and decides when the turn is over.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/prompts"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/steps"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/tools"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

// phase is a state of the per-turn machine. Every turn starts in
// phaseAwaitingModel and ends in phaseTurnComplete.
type phase int

const (
	phaseAwaitingModel phase = iota
	phaseExecutingTools
	phaseMaybeAutoItinerary
	phaseTurnComplete
)

const DefaultMaxToolCycles = 25

// Canned user-visible replies for turn-level failures. The trip state is
// never corrupted by these paths; the user can simply continue.
const (
	modelFailureReply = "I'm sorry, I couldn't reach my planning service just now. Please try again in a moment."
	inconsistentReply = "Something went wrong on my side, please repeat that."
	loopBoundReply    = "I got stuck going back and forth with my tools, so I'm stopping here for this message. Everything gathered so far is saved; ask again and we'll continue."
)

// Router runs the conversation loop for one session at a time. Callers must
// guarantee at most one active turn per session; across sessions it is safe
// to use concurrently since all per-turn data lives on the stack.
type Router struct {
	planner   model.LanguageModelPort
	execs     *steps.Executors
	repo      model.TripRepository
	maxCycles int
}

// New builds a Router. A non-positive MaxToolCycles falls back to
// DefaultMaxToolCycles.
func New(planner model.LanguageModelPort, execs *steps.Executors, repo model.TripRepository, cfg model.ConversationConfig) *Router {
	maxCycles := cfg.Router.MaxToolCycles
	if maxCycles <= 0 {
		maxCycles = DefaultMaxToolCycles
	}
	return &Router{
		planner:   planner,
		execs:     execs,
		repo:      repo,
		maxCycles: maxCycles,
	}
}

// turn is the per-turn working set: the loaded history, the message delta,
// and bookkeeping for tool-call ids and cycle counting.
type turn struct {
	sessionID string
	state     *model.TripState
	history   []*schema.Message
	trace     []*schema.Message
	cycles    int
	callIDSeq int
	costUSD   float64
}

// ProcessMessage runs one full turn: it appends the user message, loops the
// phase machine until the turn completes, and returns the final answer plus
// the message delta. Session store failures abort the turn; every other
// failure is folded into the conversation.
func (r *Router) ProcessMessage(ctx context.Context, sessionID, userText string) (*model.TurnResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errx.New(errx.InconsistentState, "session id is empty")
	}

	state, err := r.repo.LoadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = model.NewTripState(sessionID)
	}

	history, err := r.repo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	t := &turn{
		sessionID: sessionID,
		state:     state,
		history:   history.Messages,
	}
	if err := r.appendMessage(ctx, t, schema.UserMessage(userText)); err != nil {
		return nil, err
	}

	response, err := r.runTurn(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := r.repo.SaveState(ctx, t.state); err != nil {
		return nil, err
	}

	logx.Debug().
		Str("session_id", sessionID).
		Int("trace_len", len(t.trace)).
		Int("tool_cycles", t.cycles).
		Float64("cost_usd", t.costUSD).
		Msg("Turn complete")

	return &model.TurnResult{
		Response: response,
		Trace:    t.trace,
		CostUSD:  t.costUSD,
	}, nil
}

// runTurn drives the phase machine to completion and returns the final
// assistant-visible answer.
func (r *Router) runTurn(ctx context.Context, t *turn) (string, error) {
	st := phaseAwaitingModel
	var response string
	var pending []schema.ToolCall

	for st != phaseTurnComplete {
		switch st {
		case phaseAwaitingModel:
			out, next, err := r.awaitModel(ctx, t)
			if err != nil {
				return "", err
			}
			if next == phaseTurnComplete {
				response = out
				st = phaseTurnComplete
				break
			}
			pending = t.lastToolCalls()
			st = next

		case phaseExecutingTools:
			if len(pending) == 0 {
				// Only reachable off a tool-requesting model response;
				// an empty batch here means the history is corrupted.
				logx.Error().
					Str("session_id", t.sessionID).
					Msg("Executing-tools phase entered without tool calls")
				if err := r.appendMessage(ctx, t, schema.AssistantMessage(inconsistentReply, nil)); err != nil {
					return "", err
				}
				return inconsistentReply, nil
			}
			if err := r.executeTools(ctx, t, pending); err != nil {
				return "", err
			}
			pending = nil
			st = phaseMaybeAutoItinerary

		case phaseMaybeAutoItinerary:
			// Mid-clarification, sub-dialogue replies flow back through the
			// model next; never trigger auto-itinerary logic.
			if t.state.ExplorerFinished && shouldAutoGenerate(t.state) {
				if err := r.autoItinerary(ctx, t); err != nil {
					return "", err
				}
			}
			st = phaseAwaitingModel
		}
	}

	return response, nil
}

// awaitModel asks the planner for the next assistant message. It returns
// either the turn's final answer (next == phaseTurnComplete) or directs the
// machine into tool execution.
func (r *Router) awaitModel(ctx context.Context, t *turn) (string, phase, error) {
	if t.cycles >= r.maxCycles {
		logx.Error().
			Str("session_id", t.sessionID).
			Int("max_cycles", r.maxCycles).
			Str("kind", string(errx.LoopBoundExceeded)).
			Msg("Tool-cycle bound exceeded; ending turn")
		if err := r.appendMessage(ctx, t, schema.AssistantMessage(loopBoundReply, nil)); err != nil {
			return "", phaseTurnComplete, err
		}
		return loopBoundReply, phaseTurnComplete, nil
	}

	systemPrompt, err := prompts.RenderPlannerSystem(ctx, t.state)
	if err != nil {
		return "", phaseTurnComplete, err
	}

	out, err := r.planner.Complete(ctx, systemPrompt, t.history)
	if err != nil {
		logx.Error().
			Err(err).
			Str("session_id", t.sessionID).
			Str("kind", string(errx.KindOf(err))).
			Msg("Planner model call failed; ending turn")
		if appendErr := r.appendMessage(ctx, t, schema.AssistantMessage(modelFailureReply, nil)); appendErr != nil {
			return "", phaseTurnComplete, appendErr
		}
		return modelFailureReply, phaseTurnComplete, nil
	}

	r.normalizeToolCallIDs(t, out)
	t.costUSD += usageCost(out)

	if err := r.appendMessage(ctx, t, out); err != nil {
		return "", phaseTurnComplete, err
	}

	if len(out.ToolCalls) == 0 {
		if strings.TrimSpace(out.Content) == "" {
			logx.Error().
				Str("session_id", t.sessionID).
				Str("kind", string(errx.InconsistentState)).
				Msg("Model returned neither content nor tool calls")
			if err := r.appendMessage(ctx, t, schema.AssistantMessage(inconsistentReply, nil)); err != nil {
				return "", phaseTurnComplete, err
			}
			return inconsistentReply, phaseTurnComplete, nil
		}
		return out.Content, phaseTurnComplete, nil
	}

	t.cycles++
	logx.Debug().
		Str("session_id", t.sessionID).
		Int("tool_count", len(out.ToolCalls)).
		Int("cycle", t.cycles).
		Msg("Model requested tools")
	return "", phaseExecutingTools, nil
}

// executeTools runs the requested invocations in the order the model listed
// them. Later invocations see trip-state updates made by earlier ones, and
// each successful merge is persisted before the next invocation runs.
func (r *Router) executeTools(ctx context.Context, t *turn, calls []schema.ToolCall) error {
	for _, tc := range calls {
		name := tc.Function.Name
		content := ""

		inv, err := tools.ParseInvocation(tc)
		if err == nil {
			content, err = r.execs.Execute(ctx, t.state, inv)
		}
		if err != nil {
			logx.Warn().
				Err(err).
				Str("session_id", t.sessionID).
				Str("tool", name).
				Str("kind", string(errx.KindOf(err))).
				Msg("Tool execution failed; surfacing as tool result")
			content = fmt.Sprintf("Error executing %s: %v", name, err)
		} else if err := r.repo.SaveState(ctx, t.state); err != nil {
			return err
		}

		msg := schema.ToolMessage(content, tc.ID, schema.WithToolName(name))
		if err := r.appendMessage(ctx, t, msg); err != nil {
			return err
		}
	}
	return nil
}

// autoItinerary runs the itinerary executor without the model asking,
// exactly once per session (the generated flag guards re-entry).
func (r *Router) autoItinerary(ctx context.Context, t *turn) error {
	logx.Debug().
		Str("session_id", t.sessionID).
		Str("destination", t.state.Destination).
		Msg("Auto-triggering itinerary generation")

	t.callIDSeq++
	callID := fmt.Sprintf("auto_itinerary_%d", t.callIDSeq)

	content, err := r.execs.AutoItinerary(ctx, t.state)
	if err != nil {
		logx.Warn().
			Err(err).
			Str("session_id", t.sessionID).
			Str("kind", string(errx.KindOf(err))).
			Msg("Auto-itinerary failed; surfacing as tool result")
		content = fmt.Sprintf("Error executing %s: %v", tools.ToolGenerateItinerary, err)
	} else if err := r.repo.SaveState(ctx, t.state); err != nil {
		return err
	}

	msg := schema.ToolMessage(content, callID, schema.WithToolName(tools.ToolGenerateItinerary))
	return r.appendMessage(ctx, t, msg)
}

// appendMessage records a message in the session log, the in-memory history
// and the turn trace.
func (r *Router) appendMessage(ctx context.Context, t *turn, msg *schema.Message) error {
	if err := r.repo.AddMessage(ctx, t.sessionID, msg); err != nil {
		return err
	}
	t.history = append(t.history, msg)
	t.trace = append(t.trace, msg)
	return nil
}

// normalizeToolCallIDs synthesizes ids for providers that omit them, so tool
// results can always be correlated.
func (r *Router) normalizeToolCallIDs(t *turn, out *schema.Message) {
	for i := range out.ToolCalls {
		if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
			t.callIDSeq++
			out.ToolCalls[i].ID = fmt.Sprintf("call_%d", t.callIDSeq)
		}
	}
}

// lastToolCalls returns the tool calls of the most recent assistant message.
func (t *turn) lastToolCalls() []schema.ToolCall {
	for i := len(t.history) - 1; i >= 0; i-- {
		if t.history[i] != nil && t.history[i].Role == schema.Assistant {
			return t.history[i].ToolCalls
		}
	}
	return nil
}

// usageCost reads the cost the model adapter attached to the message.
func usageCost(out *schema.Message) float64 {
	if out == nil || out.Extra == nil {
		return 0
	}
	if v, ok := out.Extra["usage_cost_usd"].(float64); ok {
		return v
	}
	return 0
}
