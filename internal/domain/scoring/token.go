package scoring

import (
	"strconv"
	"strings"
)

// disqualifyMarker is compared case-insensitively.
const disqualifyMarker = "DQ"

// Kind classifies a raw vote token.
type Kind int

// Token kinds.
const (
	KindAbstain Kind = iota
	KindPoints
	KindDisqualify
)

// String returns the label used for metrics and logs.
func (k Kind) String() string {
	switch k {
	case KindPoints:
		return "points"
	case KindDisqualify:
		return "disqualify"
	default:
		return "abstain"
	}
}

// Vote is a classified vote token.
type Vote struct {
	Kind   Kind
	Points int
}

// ParseToken classifies a raw token. Anything that is neither the
// disqualification marker nor a base-10 integer is an abstention; empty,
// blank and garbage tokens are all expected and never an error.
// Surrounding whitespace is ignored for integers but not for the marker.
// Integers that do not fit in an int are abstentions.
func ParseToken(token string) Vote {
	if strings.EqualFold(token, disqualifyMarker) {
		return Vote{Kind: KindDisqualify}
	}
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return Vote{Kind: KindAbstain}
	}
	return Vote{Kind: KindPoints, Points: n}
}
