// Package mocks содержит обертки хранилищ для тестов: они считают вызовы
// и позволяют подменить результат любого метода заданной ошибкой.
package mocks

import "sync"

type failures struct {
	mu    sync.Mutex
	errs  map[string]error
	calls map[string]int
}

// FailOn заставляет метод method возвращать err; nil снимает подмену.
func (f *failures) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

// Calls возвращает, сколько раз был вызван метод, включая неудачные вызовы.
func (f *failures) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[method]
}

func (f *failures) call(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	return f.errs[method]
}
