package render

// Renderer 按模板名渲染页面数据。
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}
