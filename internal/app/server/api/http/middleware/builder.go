package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Middleware - сигнатура мидлвари huma
type Middleware = func(ctx huma.Context, next func(huma.Context))

// Container собирает цепочку мидлварей для очередного набора операций
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add добавляет мидлвари в порядке вызова: первая добавленная выполняется первой
func (mc *Container) Add(mws ...Middleware) *Container {
	mc.Middlewares = append(mc.Middlewares, mws...)
	return mc
}

// GetAllAndClear возвращает накопленную цепочку и начинает новую
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
