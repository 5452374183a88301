package translate

// Kind distinguishes the states a translatable slot can be in. Formats
// report cells that hold no text (numbers, dates, absent values) as
// NotApplicable so they bypass the translation pipeline entirely.
type Kind int

const (
	KindText Kind = iota
	KindEmpty
	KindNotApplicable
)

// Value is one occurrence of potentially translatable content. Only Text
// values ever reach the cache or the provider; Empty and NotApplicable
// pass through every stage unchanged.
type Value struct {
	kind Kind
	text string
}

// TextValue wraps a string occurrence. The empty string is normalized to
// an Empty value.
func TextValue(s string) Value {
	if s == "" {
		return Value{kind: KindEmpty}
	}
	return Value{kind: KindText, text: s}
}

// EmptyValue represents a present-but-empty slot.
func EmptyValue() Value {
	return Value{kind: KindEmpty}
}

// NAValue represents a slot that holds no textual data at all.
func NAValue() Value {
	return Value{kind: KindNotApplicable}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsText() bool { return v.kind == KindText }

// Text returns the textual content, empty for non-text values.
func (v Value) Text() string { return v.text }
