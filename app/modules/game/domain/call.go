package gamedomain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvableCall flags a call value that looks numeric but is not a usable
// bid. Such calls are scored with the literal-point rule, so penalty detection is
// off for that hand.
var ErrUnresolvableCall = errors.New("unresolvable numeric call")

// CallKind enumerates the declarations a caller can make.
type CallKind int

const (
	CallOther CallKind = iota
	CallNumeric
	CallAlone
	CallPartnerBest
)

const (
	aloneLabel       = "Alone"
	partnerBestLabel = "Partner Best"
)

func (k CallKind) String() string {
	switch k {
	case CallNumeric:
		return "numeric"
	case CallAlone:
		return "alone"
	case CallPartnerBest:
		return "partner_best"
	default:
		return "other"
	}
}

// Call is a parsed call declaration. The zero value is an empty free-text call.
type Call struct {
	kind         CallKind
	bid          int
	text         string
	unresolvable bool
}

func NumericCall(n int) Call { return Call{kind: CallNumeric, bid: n} }

func AloneCall() Call { return Call{kind: CallAlone} }

func PartnerBestCall() Call { return Call{kind: CallPartnerBest} }

func OtherCall(text string) Call { return Call{kind: CallOther, text: strings.TrimSpace(text)} }

// CommonCalls lists the quick-select calls offered by the house rules.
func CommonCalls() []Call {
	return []Call{
		NumericCall(3), NumericCall(4), NumericCall(5),
		NumericCall(6), NumericCall(7), NumericCall(8),
		PartnerBestCall(), AloneCall(),
	}
}

var numericLike = regexp.MustCompile(`^[+-]?[0-9]+([.,][0-9]*)?$`)

// ParseCall turns a stored or operator-entered call value into a Call.
// Values that look like numbers but are not a positive integer bid come back as an
// unresolvable free-text call; Err reports ErrUnresolvableCall for them.
func ParseCall(raw string) Call {
	value := strings.TrimSpace(raw)

	switch {
	case strings.EqualFold(value, aloneLabel):
		return AloneCall()
	case strings.EqualFold(value, partnerBestLabel):
		return PartnerBestCall()
	}

	if numericLike.MatchString(value) {
		n, err := strconv.Atoi(strings.TrimPrefix(value, "+"))
		if err != nil || n < 1 {
			c := OtherCall(value)
			c.unresolvable = true
			return c
		}
		return NumericCall(n)
	}

	return OtherCall(value)
}

func (c Call) Kind() CallKind { return c.kind }

// Bid is the number of points committed by a numeric call, 0 otherwise.
func (c Call) Bid() int { return c.bid }

// Err returns ErrUnresolvableCall for numeric-looking values that could not be
// used as a bid.
func (c Call) Err() error {
	if c.unresolvable {
		return ErrUnresolvableCall
	}
	return nil
}

// TrickBased reports whether points_scored is a trick count for this call.
func (c Call) TrickBased() bool {
	return c.kind == CallAlone || c.kind == CallPartnerBest
}

// String renders the canonical stored value.
func (c Call) String() string {
	switch c.kind {
	case CallNumeric:
		return strconv.Itoa(c.bid)
	case CallAlone:
		return aloneLabel
	case CallPartnerBest:
		return partnerBestLabel
	default:
		return c.text
	}
}
