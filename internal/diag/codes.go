package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Синтаксис программы
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedBracket    Code = 2007
	SynDestructuringTyped Code = 2008
	SynDuplicateCtor      Code = 2009

	// Синтаксис типов (обе грамматики)
	SynTypeExpected       Code = 2200
	SynTypeExpectRAngle   Code = 2201
	SynTypeExpectRBrace   Code = 2202
	SynTypeExpectRParen   Code = 2203
	SynTypeExpectColon    Code = 2204
	SynTypeTooDeep        Code = 2205
	SynTypeRestNotLast    Code = 2206
	SynTypeSyntaxConflict Code = 2207
	SynTypeTrailingInput  Code = 2208

	// Аннотации
	TypInfo            Code = 3000
	TypJSDocUnattached Code = 3001
	TypJSDocParamName  Code = 3002

	// Конвертация (desugaring)
	CnvInfo                Code = 4000
	CnvCannotConvertFields Code = 4001

	// Ошибки I/O
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectExpression:         "Expect expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynDestructuringTyped:       "Destructuring pattern cannot carry an inline type",
	SynDuplicateCtor:            "Duplicate constructor",
	SynTypeExpected:             "Expect type",
	SynTypeExpectRAngle:         "Expect '>' to close type arguments",
	SynTypeExpectRBrace:         "Expect '}' to close record type",
	SynTypeExpectRParen:         "Expect ')'",
	SynTypeExpectColon:          "Expect ':' in type",
	SynTypeTooDeep:              "Type expression nested too deeply",
	SynTypeRestNotLast:          "Rest parameter must be last",
	SynTypeSyntaxConflict:       "Type syntax conflict",
	SynTypeTrailingInput:        "Unexpected input after type expression",
	TypInfo:                     "Type annotation information",
	TypJSDocUnattached:          "JSDoc type tag has no declaration",
	TypJSDocParamName:           "JSDoc @param names an unknown parameter",
	CnvInfo:                     "Conversion information",
	CnvCannotConvertFields:      "Cannot convert field",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Disk cache error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

// ID returns the stable short identifier, e.g. CNV4001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CNV%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
