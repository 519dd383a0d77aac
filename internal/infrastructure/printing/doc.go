// Package printing renders studio documents (quotes) from HTML templates to PDF
// through headless Chrome.
//
//	engine := NewTemplateEngine()
//	html, err := engine.RenderQuote(ctx, doc)
//	...
//	result, err := renderer.Render(ctx, &RenderRequest{HTML: html, PaperSize: PaperSizeA4})
package printing
