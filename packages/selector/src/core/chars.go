package core

// Character code constants
const (
	CharEOF       = 0
	CharTAB       = 9
	CharLF        = 10
	CharCR        = 13
	CharSPACE     = 32
	CharDQ        = 34
	CharHASH      = 35
	CharDollar    = 36
	CharSQ        = 39
	CharLPAREN    = 40
	CharRPAREN    = 41
	CharSTAR      = 42
	CharPLUS      = 43
	CharCOMMA     = 44
	CharMINUS     = 45
	CharPERIOD    = 46
	CharCOLON     = 58
	CharEQ        = 61
	CharGT        = 62
	CharLBRACKET  = 91
	CharBACKSLASH = 92
	CharRBRACKET  = 93
	CharTILDA     = 126

	Char0 = 48
	Char9 = 57

	CharA      = 65
	CharZ      = 90
	CharLowerA = 97
	CharLowerZ = 122

	CharUnderscore = 95
)

// IsWhitespace checks if a byte represents ASCII whitespace.
// NBSP is excluded: 0xA0 also occurs as a UTF-8 continuation byte.
func IsWhitespace(code int) bool {
	return code >= CharTAB && code <= CharSPACE
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsNewLine checks if a character code represents a newline
func IsNewLine(code int) bool {
	return code == CharLF || code == CharCR
}

// IsQuote checks if a character code opens a quoted attribute value
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ
}

// IsIdentifierPart checks if a character code may appear in a tag or class name.
// Bytes of multi-byte UTF-8 sequences are accepted so custom element names can use them.
func IsIdentifierPart(code int) bool {
	return IsAsciiLetter(code) || IsDigit(code) || code == CharUnderscore || code == CharMINUS || code >= 0x80
}

// IsAttributeNamePart checks if a character code may appear in an attribute name
func IsAttributeNamePart(code int) bool {
	return IsIdentifierPart(code) || code == CharPERIOD || code == CharSTAR || code == CharDollar || code == CharBACKSLASH
}

// IsCombinator checks if a character code starts a CSS combinator
func IsCombinator(code int) bool {
	return code == CharGT || code == CharPLUS || code == CharTILDA
}
