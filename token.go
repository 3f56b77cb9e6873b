package jsonscan

// Kind tells which value a Token starts.
type Kind uint8

const (
	Invalid Kind = iota
	String
	Number
	Bool
	Null
	Constant
	ObjectStart
	ArrayStart
)

var (
	kindString = [...]string{
		Invalid:     "<invalid>",
		String:      "string",
		Number:      "number",
		Bool:        "bool",
		Null:        "null",
		Constant:    "constant",
		ObjectStart: "{",
		ArrayStart:  "[",
	}
)

func (kind Kind) String() string {
	if int(kind) < len(kindString) {
		return kindString[kind]
	}
	return kindString[Invalid]
}

// A Token is one scanned value:
//
//	String      Value and Raw hold the decoded text
//	Number      Raw holds the literal, Value what the converter made of it
//	Bool        Value is true or false
//	Null        Value is nil
//	Constant    Raw is NaN, Infinity or -Infinity, Value the converted constant
//	ObjectStart only End is set, just past '{'
//	ArrayStart  only End is set, just past '['
type Token struct {
	Kind  Kind
	Value any
	Raw   string
	End   int  // index just past the token
	Float bool // Number had a fraction or an exponent
}
