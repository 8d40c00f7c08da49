// Package fuzztests houses Go fuzz harnesses that run arbitrary bytes through
// the Go frontend and the assertion checker (source -> tokens -> tree ->
// extract/bind/reconcile). The goal is to catch panics, hangs and reports that
// break the report invariants.
//
// Назначение: загружать байты в FileSet, строить Program и проверять
// инварианты дерева, токенов и отчёта.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/frontend, internal/directive,
// internal/testkit.
package fuzztests
