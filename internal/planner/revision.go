package planner

import (
	"regexp"
	"strings"

	"alcyxob/gotrain/internal/domain"
)

// RevisionOutcome labels what a coach reply turned out to be.
type RevisionOutcome string

const (
	// OutcomeMessageOnly: no revision tag present, the reply is plain chat.
	OutcomeMessageOnly RevisionOutcome = "message_only"
	// OutcomePlanReplaced: a tagged payload decoded cleanly into a plan.
	OutcomePlanReplaced RevisionOutcome = "plan_replaced"
	// OutcomeParseFailed: a tagged payload was present but malformed.
	OutcomeParseFailed RevisionOutcome = "parse_failed"
)

// PlanReplacedMessage is substituted for the tagged region in the chat
// transcript when a revision is accepted, so raw plan JSON never reaches
// the conversation view.
const PlanReplacedMessage = "I've updated your plan based on your request! ✨"

var revisedPlanPattern = regexp.MustCompile(`(?s)<REVISED_PLAN>(.*?)</REVISED_PLAN>`)

// RevisionResult is the outcome of scanning one coach reply.
// ReplacementPlan is non-nil only for OutcomePlanReplaced; committing it to
// the plan store is the caller's job, this handler touches no shared state.
type RevisionResult struct {
	Outcome         RevisionOutcome
	DisplayMessage  string
	ReplacementPlan *domain.WeeklyPlan
	PlanText        string // the stripped JSON payload, for raw-form persistence
	ParseErr        error  // set for OutcomeParseFailed
}

// HandleCoachReply scans a raw chat reply for a <REVISED_PLAN> region and
// decides between plain pass-through, plan replacement, and recoverable
// parse failure:
//
//   - No tag: the reply is returned unchanged, no plan.
//   - Tag with valid JSON (optionally fenced): the decoded plan is returned
//     and the tagged region is replaced with PlanReplacedMessage.
//   - Tag with malformed JSON: the original reply is returned untouched so
//     the user still sees the model's attempt, and no plan is returned.
//     Revision failure must never disturb the currently stored plan.
func HandleCoachReply(rawReply string) RevisionResult {
	match := revisedPlanPattern.FindStringSubmatchIndex(rawReply)
	if match == nil {
		return RevisionResult{
			Outcome:        OutcomeMessageOnly,
			DisplayMessage: rawReply,
		}
	}

	payload := StripCodeFence(rawReply[match[2]:match[3]])

	plan, err := ParsePlan(payload)
	if err != nil {
		return RevisionResult{
			Outcome:        OutcomeParseFailed,
			DisplayMessage: rawReply,
			ParseErr:       err,
		}
	}

	display := rawReply[:match[0]] + PlanReplacedMessage + rawReply[match[1]:]
	return RevisionResult{
		Outcome:         OutcomePlanReplaced,
		DisplayMessage:  display,
		ReplacementPlan: plan,
		PlanText:        payload,
	}
}

// StripCodeFence removes an enclosing markdown code fence, if present, from a
// tagged payload. Models sometimes fence the JSON despite being told not to;
// the fence is tolerated, never required.
func StripCodeFence(payload string) string {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line (``` or ```json).
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	// Drop the closing fence line.
	trimmed = strings.TrimSpace(trimmed)
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
	}

	return strings.TrimSpace(trimmed)
}
