// Package fuzztests houses Go fuzz harnesses for the pattern pipeline
// (text -> repeat expansion -> multiples -> row check -> grid). Its goal is
// to guard against panics, hangs and runaway allocation on arbitrary input.
//
// Назначение: прогонять произвольные байты через pattern.Parse и
// driver.ChartSource и проверять инварианты сетки и диагностик.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/pattern, internal/driver, internal/testkit.
package fuzztests
