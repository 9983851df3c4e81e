package input

// BindingOption is a functional option for configuring a Binding.
type BindingOption func(*Binding)

// WithExport routes the export key to fn instead of the session.
//
// Parameters:
//   - fn: function called when the export key is pressed
//
// Returns:
//   - BindingOption: option function to apply
func WithExport(fn func()) BindingOption {
	return func(b *Binding) {
		b.onExport = fn
	}
}

// WithExportKey changes the export key from P.
//
// Parameters:
//   - code: the GLFW key code
//
// Returns:
//   - BindingOption: option function to apply
func WithExportKey(code uint32) BindingOption {
	return func(b *Binding) {
		b.exportKey = code
	}
}
