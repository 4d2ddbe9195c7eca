package window

import (
	"weak"

	"github.com/google/uuid"

	"github.com/yllada/expense-tray/common"
)

// Dialog is a handle to an ephemeral child window such as the quick-entry
// popup. The GUI layer supplies the function that actually closes it.
// A Dialog belongs to the GUI thread.
type Dialog struct {
	id        uuid.UUID
	title     string
	closeFn   func() error
	closed    bool
	onDismiss []func()
}

// NewDialog wraps a native dialog. closeFn is called at most once.
func NewDialog(title string, closeFn func() error) *Dialog {
	return &Dialog{
		id:      uuid.New(),
		title:   title,
		closeFn: closeFn,
	}
}

func (d *Dialog) ID() uuid.UUID { return d.id }

func (d *Dialog) Title() string { return d.title }

// Closed reports whether the dialog has been closed by either path.
func (d *Dialog) Closed() bool { return d.closed }

// Close closes the dialog. Closing an already closed dialog does nothing.
func (d *Dialog) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var err error
	if d.closeFn != nil {
		err = d.closeFn()
	}
	d.dismissed()
	return err
}

// Dismissed records that the dialog went away on its own, for example
// because the user closed it. The native close function is not called.
func (d *Dialog) Dismissed() {
	if d.closed {
		return
	}
	d.closed = true
	d.dismissed()
}

func (d *Dialog) dismissed() {
	callbacks := d.onDismiss
	d.onDismiss = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Registry tracks open dialogs so they can be closed together. It holds only
// weak references: a dialog the GUI has released is simply skipped.
type Registry struct {
	entries map[uuid.UUID]weak.Pointer[Dialog]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uuid.UUID]weak.Pointer[Dialog])}
}

// Register tracks d until it closes. Registering a closed dialog returns
// common.ErrDialogClosed.
func (r *Registry) Register(d *Dialog) error {
	if d.closed {
		return common.ErrDialogClosed
	}
	id := d.id
	r.entries[id] = weak.Make(d)
	d.onDismiss = append(d.onDismiss, func() { delete(r.entries, id) })
	return nil
}

// Unregister stops tracking d. Unknown dialogs are ignored.
func (r *Registry) Unregister(d *Dialog) {
	delete(r.entries, d.id)
}

// CloseAll closes every tracked dialog and empties the registry. A failure
// to close one dialog is logged and does not stop the others. It returns the
// number of dialogs that were closed.
func (r *Registry) CloseAll() int {
	if len(r.entries) == 0 {
		return 0
	}

	entries := r.entries
	r.entries = make(map[uuid.UUID]weak.Pointer[Dialog])

	closed := 0
	for id, wp := range entries {
		d := wp.Value()
		if d == nil || d.closed {
			continue
		}
		if err := d.Close(); err != nil {
			common.LogWarn("Failed to close dialog %q (%s): %v", d.title, id, err)
		}
		closed++
	}
	return closed
}

// Len returns the number of open tracked dialogs.
func (r *Registry) Len() int {
	n := 0
	for id, wp := range r.entries {
		if d := wp.Value(); d == nil || d.closed {
			delete(r.entries, id)
			continue
		}
		n++
	}
	return n
}
