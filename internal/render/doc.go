// Package render turns a spec.Specification into MOSDL text, one output unit
// per area. The traversal is strictly sequential; all mutable state (current
// indent, current area and service) lives in a per-area renderer value, so
// rendering different areas never shares state.
//
// Назначение: обход дерева спецификации и вывод корректно отформатированного
// текста (три режима документации, раскладка по interaction pattern).
// Не делает: загрузки модели, записи файлов, валидации ссылок.
// Зависимости: internal/spec.
package render
