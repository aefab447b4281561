package ir

// Event is an immutable puzzle fact. Year is signed: negative years are BCE.
type Event struct {
	ID   string `json:"id" yaml:"id"`
	Year int    `json:"year" yaml:"year"`
	Text string `json:"text" yaml:"text"`
}

// Puzzle is a compiled order-mode puzzle definition.
// Baseline is the canonical chronological order of event ids.
type Puzzle struct {
	ID       string   `json:"id" yaml:"id"`
	Date     string   `json:"date,omitempty" yaml:"date,omitempty"`
	Events   []Event  `json:"events" yaml:"events"`
	Baseline []string `json:"baseline" yaml:"baseline"`
}

// HintKind discriminates the Hint variants.
type HintKind string

const (
	HintAnchor   HintKind = "anchor"
	HintRelative HintKind = "relative"
	HintBracket  HintKind = "bracket"
)

// ValidHintKinds lists every kind in declaration order.
var ValidHintKinds = []HintKind{HintAnchor, HintRelative, HintBracket}

// Hint is a sealed sum type. AnchorHint, RelativeHint and BracketHint are the
// only implementations; switches over Hint handle all three.
type Hint interface {
	Kind() HintKind
	isHint()
}

// AnchorHint fixes EventID at absolute index Position in the full ordering,
// permanently, once granted.
type AnchorHint struct {
	EventID  string
	Position int
}

// RelativeHint asserts EarlierEventID happened before LaterEventID.
// It never moves anything.
type RelativeHint struct {
	EarlierEventID string
	LaterEventID   string
}

// BracketHint asserts the event's year lies within the inclusive YearRange.
// It never moves anything.
type BracketHint struct {
	EventID   string
	YearRange [2]int
}

func (AnchorHint) Kind() HintKind   { return HintAnchor }
func (RelativeHint) Kind() HintKind { return HintRelative }
func (BracketHint) Kind() HintKind  { return HintBracket }

func (AnchorHint) isHint()   {}
func (RelativeHint) isHint() {}
func (BracketHint) isHint()  {}
