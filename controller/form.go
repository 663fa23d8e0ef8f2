// ABOUTME: Generic create/update form controller with a local draft
// ABOUTME: Validates locally, guards duplicate submits, and publishes saved events
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/models"
	"github.com/vestryhq/vestry/state"
)

const (
	keyDraft      = "draft"
	keySubmitting = "isSubmitting"
)

// Field describes one editable attribute of a resource.
type Field struct {
	Name       string // JSON field name
	Label      string
	Required   bool
	Repeatable bool // ordered list of free-text entries
	File       bool // local file attached at submit time
	Bool       bool // true/false select
}

// Draft is the form's unsaved working copy. Repeatable lists always hold at
// least one slot so the add-another affordance has a row to clone.
type Draft struct {
	Values map[string]string
	Lists  map[string][]string
	Files  map[string]string // field name -> local path
}

func newDraft(fields []Field) Draft {
	d := Draft{
		Values: make(map[string]string),
		Lists:  make(map[string][]string),
		Files:  make(map[string]string),
	}
	for _, f := range fields {
		if f.Repeatable {
			d.Lists[f.Name] = []string{""}
		}
	}
	return d
}

func (d Draft) clone() Draft {
	c := Draft{
		Values: make(map[string]string, len(d.Values)),
		Lists:  make(map[string][]string, len(d.Lists)),
		Files:  make(map[string]string, len(d.Files)),
	}
	for k, v := range d.Values {
		c.Values[k] = v
	}
	for k, v := range d.Lists {
		c.Lists[k] = append([]string(nil), v...)
	}
	for k, v := range d.Files {
		c.Files[k] = v
	}
	return c
}

// Saver performs the create (zero id) or update (non-zero id) call against
// the REST boundary and returns the server's copy of the entity.
type Saver func(ctx context.Context, id models.ID, body any) (models.Entity, error)

// Form is the modal-form controller. One instance serves one open dialog;
// the draft is discarded on reset or after a successful submit and is never
// shared between instances.
type Form struct {
	resource string
	fields   []Field
	store    *state.Store
	notifier Notifier
	bus      *Bus
	save     Saver

	mu       sync.Mutex // guards the submit admission check
	entityID models.ID
}

func NewForm(resource string, fields []Field, save Saver, bus *Bus, notifier Notifier) *Form {
	f := &Form{
		resource: resource,
		fields:   fields,
		store:    state.NewStore(),
		notifier: notifier,
		bus:      bus,
		save:     save,
	}
	f.store.Set(keySubmitting, false)
	f.store.Set(keyDraft, newDraft(fields))
	return f
}

func (f *Form) Resource() string    { return f.resource }
func (f *Form) Fields() []Field     { return f.fields }
func (f *Form) State() *state.Store { return f.store }

// Updating reports whether the form edits an existing entity.
func (f *Form) Updating() bool { return !f.entityID.IsZero() }

func (f *Form) EntityID() models.ID { return f.entityID }

// Draft returns a copy of the working draft. Mutations go through the
// form's methods so every change triggers a render.
func (f *Form) Draft() Draft {
	return state.Value[Draft](f.store, keyDraft).clone()
}

func (f *Form) setDraft(d Draft) {
	f.store.Set(keyDraft, d)
}

// SetEntity seeds the draft from an existing entity (update mode) or resets
// it empty (add mode, nil entity).
func (f *Form) SetEntity(ent models.Entity) {
	if ent == nil {
		f.entityID = ""
		f.setDraft(newDraft(f.fields))
		return
	}
	f.entityID = ent.EntityID()
	f.setDraft(f.seedFrom(ent))
}

// seedFrom copies the entity's editable fields into a fresh draft via its
// JSON form, so the form never reaches into concrete entity types.
func (f *Form) seedFrom(ent models.Entity) Draft {
	d := newDraft(f.fields)

	raw, err := json.Marshal(ent)
	if err != nil {
		return d
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return d
	}

	for _, field := range f.fields {
		v, ok := obj[field.Name]
		if !ok || v == nil {
			continue
		}
		switch {
		case field.Repeatable:
			items, ok := v.([]any)
			if !ok {
				continue
			}
			list := make([]string, 0, len(items))
			for _, it := range items {
				if s, ok := it.(string); ok {
					list = append(list, s)
				}
			}
			if len(list) == 0 {
				list = []string{""}
			}
			d.Lists[field.Name] = list
		case field.File:
			// Files are local-only; remote assets are managed in the detail view.
		case field.Bool:
			if b, ok := v.(bool); ok {
				d.Values[field.Name] = strconv.FormatBool(b)
			}
		default:
			if s, ok := v.(string); ok {
				d.Values[field.Name] = s
			} else {
				d.Values[field.Name] = fmt.Sprintf("%v", v)
			}
		}
	}
	return d
}

// SetValue writes one scalar draft value.
func (f *Form) SetValue(field, value string) {
	d := f.Draft()
	d.Values[field] = value
	f.setDraft(d)
}

// AttachFile stages a local file for upload; an empty path clears it.
func (f *Form) AttachFile(field, path string) {
	d := f.Draft()
	if path == "" {
		delete(d.Files, field)
	} else {
		d.Files[field] = path
	}
	f.setDraft(d)
}

// AddRepeatable appends an empty slot to a repeatable field. current must be
// the field's on-screen input values: the full re-render model does not sync
// keystrokes automatically, so they are read back into the draft here before
// the list changes shape. Otherwise in-progress edits would be discarded.
func (f *Form) AddRepeatable(field string, current []string) {
	d := f.Draft()
	list := append([]string(nil), current...)
	if len(list) == 0 {
		list = []string{""}
	}
	d.Lists[field] = append(list, "")
	f.setDraft(d)
}

// RemoveRepeatable drops one slot from a repeatable field, reading back the
// on-screen values first (see AddRepeatable). The last remaining slot is
// never removed.
func (f *Form) RemoveRepeatable(field string, current []string, index int) {
	d := f.Draft()
	list := append([]string(nil), current...)
	if len(list) <= 1 || index < 0 || index >= len(list) {
		d.Lists[field] = list
		f.setDraft(d)
		return
	}
	d.Lists[field] = append(list[:index], list[index+1:]...)
	f.setDraft(d)
}

// ReadBack syncs on-screen repeatable values into the draft without changing
// the list's shape, typically right before submit.
func (f *Form) ReadBack(field string, current []string) {
	d := f.Draft()
	list := append([]string(nil), current...)
	if len(list) == 0 {
		list = []string{""}
	}
	d.Lists[field] = list
	f.setDraft(d)
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	return state.Value[bool](f.store, keySubmitting)
}

// Submit validates the draft and calls the REST boundary. A submit already
// in flight makes this a no-op: two confirms for the same draft must not
// both reach the network. On success the saved entity is published on the
// bus and the draft resets; on failure the draft stays intact so the user
// can retry.
func (f *Form) Submit(ctx context.Context) {
	f.mu.Lock()
	if state.Value[bool](f.store, keySubmitting) {
		f.mu.Unlock()
		return
	}
	f.store.Set(keySubmitting, true)
	f.mu.Unlock()
	defer f.store.Set(keySubmitting, false)

	d := f.Draft()
	if !f.validate(d) {
		return
	}

	ent, err := f.save(ctx, f.entityID, f.buildBody(d))
	if err != nil {
		notifyError(f.notifier, "Failed to save", err)
		return
	}

	if f.entityID.IsZero() {
		f.bus.Publish(f.resource, Created{Entity: ent})
		notifySuccess(f.notifier, "Created", "The record was created.")
	} else {
		f.bus.Publish(f.resource, Updated{Entity: ent})
		notifySuccess(f.notifier, "Saved", "Your changes were saved.")
	}
	f.SetEntity(nil)
}

// validate reports the first precondition failure via the notifier. No
// network call happens when validation fails.
func (f *Form) validate(d Draft) bool {
	for _, field := range f.fields {
		if !field.Required {
			continue
		}
		if field.Repeatable {
			if !anyNonEmpty(d.Lists[field.Name]) {
				notifyWarning(f.notifier, "Validation", field.Label+" needs at least one entry")
				return false
			}
			continue
		}
		if field.File || field.Bool {
			continue
		}
		if strings.TrimSpace(d.Values[field.Name]) == "" {
			notifyWarning(f.notifier, "Validation", field.Label+" is required")
			return false
		}
	}
	return true
}

// buildBody produces a multipart body when a file is staged, otherwise a
// plain JSON object. Empty repeatable slots are dropped from the payload.
func (f *Form) buildBody(d Draft) any {
	if len(d.Files) > 0 {
		mp := api.NewMultipart()
		for _, field := range f.fields {
			switch {
			case field.File:
				if path, ok := d.Files[field.Name]; ok {
					mp.AddFile(field.Name, path)
				}
			case field.Repeatable:
				mp.SetListField(field.Name, nonEmpty(d.Lists[field.Name]))
			default:
				mp.SetField(field.Name, d.Values[field.Name])
			}
		}
		return mp
	}

	body := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		switch {
		case field.File:
		case field.Repeatable:
			body[field.Name] = nonEmpty(d.Lists[field.Name])
		case field.Bool:
			b, _ := strconv.ParseBool(d.Values[field.Name])
			body[field.Name] = b
		default:
			body[field.Name] = d.Values[field.Name]
		}
	}
	return body
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func anyNonEmpty(list []string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
