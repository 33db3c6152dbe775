// Package driver orchestrates generation runs: it collects input files,
// loads them in parallel, renders every area and writes one MOSDL file per
// area. Rendering itself stays strictly sequential per specification; only
// whole input files are processed concurrently.
//
// Назначение: связать loader, render и файловую систему в один прогон.
// Не делает: разбора XML и форматирования текста — это loader и render.
// Зависимости: internal/loader, internal/render, internal/pipeline,
// internal/observ, msgpack (кэш), errgroup (параллельная загрузка).
package driver
