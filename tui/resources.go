// ABOUTME: Registry wiring each church resource into the generic controllers
// ABOUTME: Declares columns, form fields, detail layout, and asset arrays per resource
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/controller"
	"github.com/vestryhq/vestry/models"
)

// detailField is one labeled line in the detail view, addressed by the
// entity's JSON field name.
type detailField struct {
	label string
	name  string
}

// assetSpec names one positional asset array on an entity.
type assetSpec struct {
	name  string // JSON field and URL path segment
	label string
}

type entrySpec struct {
	resource      string
	label         string
	columns       []table.Column
	fields        []controller.Field
	detailFields  []detailField
	assets        []assetSpec
	markdownField string // rendered as markdown in the detail view
	readOnly      bool   // server-managed resource, no add/edit/delete
}

// resourceEntry bundles the controllers serving one resource tab.
type resourceEntry struct {
	spec    entrySpec
	page    controller.Page
	form    *controller.Form
	detail  *controller.Detail
	confirm *controller.Confirm
}

func newEntry[E models.Entity](client *api.Client, bus *controller.Bus, notifier controller.Notifier, spec entrySpec, rowFn controller.RowFunc[E]) *resourceEntry {
	resource := spec.resource

	loader := func(ctx context.Context) ([]E, error) {
		return api.List[E](ctx, client, resource)
	}

	saver := func(ctx context.Context, id models.ID, body any) (models.Entity, error) {
		if id.IsZero() {
			ent, err := api.Create[E](ctx, client, resource, body)
			if err != nil {
				return nil, err
			}
			return ent, nil
		}
		ent, err := api.Update[E](ctx, client, resource, id, body)
		if err != nil {
			return nil, err
		}
		return ent, nil
	}

	remover := func(ctx context.Context, id models.ID) error {
		return api.Delete(ctx, client, resource, id)
	}

	assetRemover := func(ctx context.Context, id models.ID, assetType string, index int) (models.Entity, error) {
		ent, err := api.DeleteAsset[E](ctx, client, resource, id, assetType, index)
		if err != nil {
			return nil, err
		}
		return ent, nil
	}

	return &resourceEntry{
		spec:    spec,
		page:    controller.NewListPage[E](resource, loader, rowFn, notifier),
		form:    controller.NewForm(resource, spec.fields, saver, bus, notifier),
		detail:  controller.NewDetail(resource, assetRemover, bus, notifier),
		confirm: controller.NewConfirm(resource, remover, bus, notifier),
	}
}

func buildEntries(client *api.Client, bus *controller.Bus, notifier controller.Notifier) []*resourceEntry {
	return []*resourceEntry{
		newEntry[models.Gallery](client, bus, notifier, entrySpec{
			resource: "galleries",
			label:    "Galleries",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Title", Width: 28},
				{Title: "Description", Width: 34},
				{Title: "Images", Width: 10},
			},
			fields: []controller.Field{
				{Name: "title", Label: "Title", Required: true},
				{Name: "description", Label: "Description"},
				{Name: "images", Label: "Image file", File: true},
			},
			detailFields: []detailField{
				{label: "Title", name: "title"},
				{label: "Description", name: "description"},
				{label: "Created", name: "created_at"},
			},
			assets: []assetSpec{{name: models.AssetImages, label: "Images"}},
		}, func(i int, g models.Gallery) []string {
			return []string{rowIndex(i), g.Title, truncate(g.Description, 32), fmtCount(len(g.Images), "image")}
		}),

		newEntry[models.Sermon](client, bus, notifier, entrySpec{
			resource: "sermons",
			label:    "Sermons",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Title", Width: 28},
				{Title: "Speaker", Width: 20},
				{Title: "Scripture", Width: 16},
				{Title: "Preached", Width: 12},
			},
			fields: []controller.Field{
				{Name: "title", Label: "Title", Required: true},
				{Name: "speaker", Label: "Speaker"},
				{Name: "scripture", Label: "Scripture"},
				{Name: "description", Label: "Description"},
				{Name: "video_links", Label: "Video links", Repeatable: true},
				{Name: "audio", Label: "Audio file", File: true},
			},
			detailFields: []detailField{
				{label: "Title", name: "title"},
				{label: "Speaker", name: "speaker"},
				{label: "Scripture", name: "scripture"},
				{label: "Preached", name: "preached_at"},
				{label: "Video links", name: "video_links"},
			},
			assets:        []assetSpec{{name: models.AssetAudio, label: "Audio"}},
			markdownField: "description",
		}, func(i int, s models.Sermon) []string {
			return []string{rowIndex(i), s.Title, s.Speaker, s.Scripture, fmtDatePtr(s.PreachedAt)}
		}),

		newEntry[models.LifeGroup](client, bus, notifier, entrySpec{
			resource: "lifegroups",
			label:    "Life Groups",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Name", Width: 24},
				{Title: "Leader", Width: 20},
				{Title: "Day", Width: 12},
				{Title: "Location", Width: 20},
			},
			fields: []controller.Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "leader", Label: "Leader"},
				{Name: "meeting_day", Label: "Meeting day"},
				{Name: "location", Label: "Location"},
				{Name: "contact", Label: "Contact"},
				{Name: "description", Label: "Description"},
			},
			detailFields: []detailField{
				{label: "Name", name: "name"},
				{label: "Leader", name: "leader"},
				{label: "Meeting day", name: "meeting_day"},
				{label: "Location", name: "location"},
				{label: "Contact", name: "contact"},
				{label: "Description", name: "description"},
			},
		}, func(i int, l models.LifeGroup) []string {
			return []string{rowIndex(i), l.Name, l.Leader, l.MeetingDay, l.Location}
		}),

		newEntry[models.Ministry](client, bus, notifier, entrySpec{
			resource: "ministries",
			label:    "Ministries",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Name", Width: 26},
				{Title: "Leader", Width: 20},
				{Title: "Description", Width: 30},
			},
			fields: []controller.Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "leader", Label: "Leader"},
				{Name: "description", Label: "Description"},
				{Name: "banner", Label: "Banner image", File: true},
			},
			detailFields: []detailField{
				{label: "Name", name: "name"},
				{label: "Leader", name: "leader"},
				{label: "Banner", name: "banner"},
			},
			markdownField: "description",
		}, func(i int, mi models.Ministry) []string {
			return []string{rowIndex(i), mi.Name, mi.Leader, truncate(mi.Description, 28)}
		}),

		newEntry[models.Setting](client, bus, notifier, entrySpec{
			resource: "settings",
			label:    "Settings",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Name", Width: 24},
				{Title: "Value", Width: 36},
				{Title: "Category", Width: 14},
			},
			fields: []controller.Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "value", Label: "Value", Required: true},
				{Name: "category", Label: "Category"},
			},
			detailFields: []detailField{
				{label: "Name", name: "name"},
				{label: "Value", name: "value"},
				{label: "Category", name: "category"},
				{label: "Updated", name: "updated_at"},
			},
		}, func(i int, s models.Setting) []string {
			return []string{rowIndex(i), s.Name, truncate(s.Value, 34), s.Category}
		}),

		newEntry[models.LogEntry](client, bus, notifier, entrySpec{
			resource: "logs",
			label:    "Logs",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "When", Width: 18},
				{Title: "Action", Width: 10},
				{Title: "Actor", Width: 18},
				{Title: "Detail", Width: 32},
			},
			detailFields: []detailField{
				{label: "When", name: "created_at"},
				{label: "Action", name: "action"},
				{label: "Actor", name: "actor"},
				{label: "Detail", name: "detail"},
			},
			readOnly: true,
		}, func(i int, l models.LogEntry) []string {
			return []string{rowIndex(i), fmtDateTime(l.CreatedAt), l.Action, l.Actor, truncate(l.Detail, 30)}
		}),

		newEntry[models.Testimonial](client, bus, notifier, entrySpec{
			resource: "testimonials",
			label:    "Testimonials",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Name", Width: 20},
				{Title: "Message", Width: 40},
				{Title: "Approved", Width: 10},
			},
			fields: []controller.Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "message", Label: "Message", Required: true},
				{Name: "approved", Label: "Approved", Bool: true},
			},
			detailFields: []detailField{
				{label: "Name", name: "name"},
				{label: "Message", name: "message"},
				{label: "Approved", name: "approved"},
				{label: "Received", name: "created_at"},
			},
		}, func(i int, t models.Testimonial) []string {
			return []string{rowIndex(i), t.Name, truncate(t.Message, 38), fmtBool(t.Approved)}
		}),

		newEntry[models.GiveEntry](client, bus, notifier, entrySpec{
			resource: "give",
			label:    "Giving",
			columns: []table.Column{
				{Title: "#", Width: 4},
				{Title: "Method", Width: 12},
				{Title: "Account", Width: 24},
				{Title: "Links", Width: 10},
				{Title: "Active", Width: 8},
			},
			fields: []controller.Field{
				{Name: "method", Label: "Method", Required: true},
				{Name: "account_name", Label: "Account name"},
				{Name: "links", Label: "Payment links", Repeatable: true, Required: true},
				{Name: "active", Label: "Active", Bool: true},
			},
			detailFields: []detailField{
				{label: "Method", name: "method"},
				{label: "Account", name: "account_name"},
				{label: "Links", name: "links"},
				{label: "Active", name: "active"},
			},
		}, func(i int, g models.GiveEntry) []string {
			return []string{rowIndex(i), g.Method, g.AccountName, fmtCount(len(g.Links), "link"), fmtBool(g.Active)}
		}),
	}
}
