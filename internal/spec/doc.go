// Package spec holds the in-memory model of an MO service specification:
// areas owning services, capability sets, operations, data types and errors.
//
// Назначение: read-only дерево спецификации, которое обходит рендерер.
// Не делает: загрузки XML, валидации ссылок, вывода текста.
// Зависимости: только стандартная библиотека.
package spec
