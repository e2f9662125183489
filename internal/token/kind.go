package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	NumberLit
	StringLit

	KwVar
	KwLet
	KwConst
	KwFunction
	KwClass
	KwExtends
	KwReturn
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwBreak
	KwContinue
	KwThrow
	KwTry
	KwCatch
	KwFinally
	KwNew
	KwThis
	KwSuper
	KwNull
	KwTrue
	KwFalse
	KwTypeof
	KwVoid
	KwDelete
	KwIn
	KwInstanceof

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	PlusPlus         // ++
	MinusMinus       // --
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	EqEq             // ==
	EqEqEq           // ===
	Bang             // !
	BangEq           // !=
	BangEqEq         // !==
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	Question         // ?
	QuestionQuestion // ??
	Colon            // :
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	DotDotDot        // ...
	FatArrow         // =>
	LParen           // (
	RParen           // )
	LBrace           // {
	RBrace           // }
	LBracket         // [
	RBracket         // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	NumberLit:        "NumberLit",
	StringLit:        "StringLit",
	KwVar:            "var",
	KwLet:            "let",
	KwConst:          "const",
	KwFunction:       "function",
	KwClass:          "class",
	KwExtends:        "extends",
	KwReturn:         "return",
	KwIf:             "if",
	KwElse:           "else",
	KwFor:            "for",
	KwWhile:          "while",
	KwDo:             "do",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwThrow:          "throw",
	KwTry:            "try",
	KwCatch:          "catch",
	KwFinally:        "finally",
	KwNew:            "new",
	KwThis:           "this",
	KwSuper:          "super",
	KwNull:           "null",
	KwTrue:           "true",
	KwFalse:          "false",
	KwTypeof:         "typeof",
	KwVoid:           "void",
	KwDelete:         "delete",
	KwIn:             "in",
	KwInstanceof:     "instanceof",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	EqEq:             "==",
	EqEqEq:           "===",
	Bang:             "!",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	Question:         "?",
	QuestionQuestion: "??",
	Colon:            ":",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	DotDotDot:        "...",
	FatArrow:         "=>",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
}

// String returns the punctuation or keyword spelling, or the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsAssignOp reports whether k is '=' or a compound assignment.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	}
	return false
}
