package widget

import (
	"github.com/pluqqy/quicknotes/pkg/dom"
)

// Disclaimer is the empty-state block shown when there are no notes. Its
// button runs a one-shot confirm callback.
type Disclaimer struct {
	root    *dom.Handle
	confirm *dom.Button
	armed   *dom.Subscription
}

// NewDisclaimer locates the disclaimer and its button and hides it
func NewDisclaimer(doc *dom.Document, rootSelector string) (*Disclaimer, error) {
	root, err := doc.Locate(rootSelector)
	if err != nil {
		return nil, err
	}
	confirm, err := doc.LocateButton(rootSelector, "button")
	if err != nil {
		return nil, err
	}

	d := &Disclaimer{root: root, confirm: confirm}
	d.root.Hide()
	return d, nil
}

// QueryConfirm shows the disclaimer and arms its button. Re-arming replaces
// the previous callback.
func (d *Disclaimer) QueryConfirm(onConfirm func()) {
	d.armed.Cancel()
	d.root.Show()

	d.armed = d.confirm.OnClick(func() {
		d.armed = nil
		d.root.Hide()
		onConfirm()
	}, dom.Once())
}

// Dismiss hides the disclaimer and disarms its button
func (d *Disclaimer) Dismiss() {
	d.armed.Cancel()
	d.armed = nil
	d.root.Hide()
}

// IsHidden reports whether the disclaimer is hidden
func (d *Disclaimer) IsHidden() bool {
	return d.root.IsHidden()
}

// Button returns the confirm button
func (d *Disclaimer) Button() *dom.Button {
	return d.confirm
}
