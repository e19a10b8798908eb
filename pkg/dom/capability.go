package dom

// Field is an input or textarea. The capability is checked once by AsField,
// so its accessors cannot fail.
type Field struct {
	*Handle
}

// AsField wraps a handle that supports values
func AsField(h *Handle) (*Field, error) {
	if !h.Can(CanValue) {
		return nil, &CapabilityError{Tag: h.Tag(), Operation: "use as field"}
	}
	return &Field{Handle: h}, nil
}

// Value returns the current value
func (f *Field) Value() string {
	value, _ := f.Handle.Value()
	return value
}

// SetValue replaces the value without dispatching an input event
func (f *Field) SetValue(value string) {
	_ = f.Handle.SetValue(value)
}

// Clear empties the field
func (f *Field) Clear() {
	f.SetValue("")
}

// OnChange subscribes to input events
func (f *Field) OnChange(fn func(value string), opts ...ListenOption) *Subscription {
	return f.OnInput(fn, opts...)
}

// Button is an element that can be enabled, disabled and relabelled
type Button struct {
	*Handle
}

// AsButton wraps a handle that supports enable/disable
func AsButton(h *Handle) (*Button, error) {
	if !h.Can(CanEnable | CanText) {
		return nil, &CapabilityError{Tag: h.Tag(), Operation: "use as button"}
	}
	return &Button{Handle: h}, nil
}

// SetEnabled toggles the disabled attribute
func (b *Button) SetEnabled(enabled bool) {
	_ = b.Handle.SetEnabled(enabled)
}

// Enable removes the disabled attribute
func (b *Button) Enable() {
	b.SetEnabled(true)
}

// Disable sets the disabled attribute
func (b *Button) Disable() {
	b.SetEnabled(false)
}

// SetLabel replaces the button text
func (b *Button) SetLabel(label string) {
	_ = b.Handle.SetText(label)
}

// TextBlock is an element whose text content can be replaced
type TextBlock struct {
	*Handle
}

// AsTextBlock wraps a handle that supports text replacement
func AsTextBlock(h *Handle) (*TextBlock, error) {
	if !h.Can(CanText) {
		return nil, &CapabilityError{Tag: h.Tag(), Operation: "use as text block"}
	}
	return &TextBlock{Handle: h}, nil
}

// SetText replaces the text content
func (t *TextBlock) SetText(text string) {
	_ = t.Handle.SetText(text)
}
