package relay

import "time"

// attemptOutcome classifies what one upstream attempt produced.
type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeThrottled
	outcomeUpstream
	outcomeNetwork
)

// actionKind is what the dispatch loop does after an attempt.
type actionKind int

const (
	actionSucceed actionKind = iota
	actionRetry
	actionFailQuota
	actionFailUpstream
	actionFailTransport
)

// action pairs the next step with an optional backoff delay before it.
type action struct {
	kind  actionKind
	delay time.Duration
}

// decide maps one attempt outcome to the loop's next action. attempt is
// 0-indexed. Throttling backs off exponentially (base<<attempt) before the
// next try; a throttled final attempt becomes quota exhaustion with no
// trailing sleep. Network errors retry without extra delay, since the rate
// gate already spaces attempt starts, and become a transport failure on the
// final attempt. Any other upstream error status fails immediately. Pure
// function, so the whole retry ladder is testable without a clock or network.
func decide(attempt, maxAttempts int, outcome attemptOutcome, backoffBase time.Duration) action {
	switch outcome {
	case outcomeSuccess:
		return action{kind: actionSucceed}
	case outcomeThrottled:
		if attempt+1 >= maxAttempts {
			return action{kind: actionFailQuota}
		}
		return action{kind: actionRetry, delay: backoffBase << attempt}
	case outcomeNetwork:
		if attempt+1 >= maxAttempts {
			return action{kind: actionFailTransport}
		}
		return action{kind: actionRetry}
	default:
		return action{kind: actionFailUpstream}
	}
}
