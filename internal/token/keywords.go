package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"class":      KwClass,
	"extends":    KwExtends,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"new":        KwNew,
	"this":       KwThis,
	"super":      KwSuper,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"typeof":     KwTypeof,
	"void":       KwVoid,
	"delete":     KwDelete,
	"in":         KwIn,
	"instanceof": KwInstanceof,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
