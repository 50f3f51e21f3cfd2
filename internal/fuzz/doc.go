// Package fuzztests houses Go fuzz harnesses for the parsing pipeline
// (text -> lexer -> parser -> diagnostic tree). They guard against panics,
// hangs and lost bytes on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, парсер и проекцию
// во всех диалектах и проверять инварианты testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/parser, internal/cssnode,
// internal/testkit.
package fuzztests
