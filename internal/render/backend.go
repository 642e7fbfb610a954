package render

// Backend is the injected boundary for platform presentation glue: binding a
// GL context to the Composite overlay window, swap-interval/VSync
// negotiation, and GLX_EXT_texture_from_pixmap-style pixmap import. The spec
// treats the VSync backend as an external collaborator (§1, §6); a concrete
// implementation (e.g. a small cgo GLX shim) is supplied by the production
// binary, never by this package, matching the boundary `config` already
// draws around file parsing.
type Backend interface {
	// OverlayTexture returns the texture backing the Composite overlay
	// window that the final present draws into.
	OverlayTexture() *Texture
	// ImportPixmap wraps an X pixmap id as a sampleable Texture without a
	// copy (texture-from-pixmap). Returns an error if the extension isn't
	// available or the import fails.
	ImportPixmap(pixmapID uint32, w, h int) (*Texture, error)
	// Present swaps buffers, blocking on VSync per the configured swap
	// interval (§5's "GPU glFinish/VSync wait" suspension point).
	Present() error
	// Close releases the GL context and overlay window.
	Close() error
}
