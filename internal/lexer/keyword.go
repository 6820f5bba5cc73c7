package lexer

import "sort"

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted alphabetically by text.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"and", TokKwAnd},
	{"break", TokKwBreak},
	{"closure", TokKwClosure},
	{"color", TokKwColor},
	{"continue", TokKwContinue},
	{"displacement", TokKwDisplacement},
	{"do", TokKwDo},
	{"else", TokKwElse},
	{"emit", TokKwEmit},
	{"float", TokKwFloat},
	{"for", TokKwFor},
	{"if", TokKwIf},
	{"illuminance", TokKwIlluminance},
	{"illuminate", TokKwIlluminate},
	{"int", TokKwInt},
	{"light", TokKwLight},
	{"matrix", TokKwMatrix},
	{"normal", TokKwNormal},
	{"not", TokKwNot},
	{"or", TokKwOr},
	{"output", TokKwOutput},
	{"point", TokKwPoint},
	{"public", TokKwPublic},
	{"return", TokKwReturn},
	{"shader", TokKwShader},
	{"string", TokKwString},
	{"struct", TokKwStruct},
	{"surface", TokKwSurface},
	{"vector", TokKwVector},
	{"void", TokKwVoid},
	{"volume", TokKwVolume},
	{"while", TokKwWhile},
}

// LookupKeyword returns the TokenKind for a keyword, or (TokError, false) if not found.
func LookupKeyword(text string) (TokenKind, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return TokError, false
}

// reservedKeywords is the sorted list of identifiers reserved by OSL but not
// given any meaning. Using one lexes to TokError.
// IMPORTANT: This slice MUST remain sorted alphabetically for binary search.
var reservedKeywords = []string{
	"bool",
	"case",
	"catch",
	"char",
	"class",
	"const",
	"default",
	"delete",
	"double",
	"enum",
	"extern",
	"false",
	"friend",
	"goto",
	"inline",
	"long",
	"new",
	"operator",
	"private",
	"protected",
	"short",
	"signed",
	"sizeof",
	"static",
	"switch",
	"template",
	"this",
	"throw",
	"true",
	"try",
	"typedef",
	"uniform",
	"union",
	"unsigned",
	"varying",
	"virtual",
	"volatile",
}

// IsReservedKeyword returns true if text is a reserved keyword.
func IsReservedKeyword(text string) bool {
	idx := sort.SearchStrings(reservedKeywords, text)
	return idx < len(reservedKeywords) && reservedKeywords[idx] == text
}
