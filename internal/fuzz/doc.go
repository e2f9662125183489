
// Package fuzztests houses Go fuzz harnesses for the desugaring pipeline
// (source -> lexer -> parser -> passes -> printer) and for both type
// annotation grammars. Its goal is to guard against panics and hangs on
// arbitrary inputs.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/typeexpr,
// internal/normalize, internal/driver.

package fuzztests
