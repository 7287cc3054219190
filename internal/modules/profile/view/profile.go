// Package view renders the profile page with gomponents. Every fragment that htmx swaps
// in is rooted at an element with a stable id.
package view

import (
	"time"

	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/notify"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	CardID   = "profile-card"
	ToastsID = "toasts"
)

// Data is the View Model (DTO) for the profile card.
type Data struct {
	Profile domain.Profile
	// Editing is true while an edit session is open, including while it is being saved.
	Editing bool
	Saving  bool
}

// Page is the full page body: the card and the toast region.
func Page(data Data, notes []notify.Notification) cmp.Node {
	return cmp.Group{
		Card(data),
		Toasts(notes, false),
	}
}

// Card renders the profile card in viewing or editing mode.
func Card(data Data) cmp.Node {
	p := data.Profile
	if !data.Editing {
		return g.Div(
			g.ID(CardID),
			g.Class("profile-card"),
			g.Img(g.Class("profile-avatar"), g.Src(p.Image), g.Alt("Profile picture")),
			g.P(g.Class("profile-name"), cmp.Text(p.Name)),
			g.Hr(),
			section("CONTACT INFORMATION",
				row("Email id:", value(p.Email)),
				row("Phone:", value(p.Phone)),
				row("Address:", g.P(g.Class("profile-value"), cmp.Text(p.Address.Line1), g.Br(), cmp.Text(p.Address.Line2))),
			),
			section("BASIC INFORMATION",
				row("Gender:", value(p.Gender)),
				row("Birthday:", value(p.DOB)),
				row("Pet:", value(p.Pet)),
				row("About Pet:", value(p.AboutPet)),
			),
			g.Form(
				g.Class("profile-actions"),
				g.Method("post"),
				g.Action("/profile/edit"),
				g.Button(
					g.Type("submit"),
					hx.Post("/profile/edit"),
					hx.Target("#"+CardID),
					hx.Swap("outerHTML"),
					cmp.Text("Edit"),
				),
			),
		)
	}

	// Inputs are disabled while a save is in flight.
	dis := cmp.If(data.Saving, g.Disabled())
	return g.Div(
		g.ID(CardID),
		g.Class("profile-card"),
		g.Form(
			g.ID("profile-form"),
			g.Method("post"),
			g.Action("/profile/save"),
			g.EncType("multipart/form-data"),
			g.Label(
				g.For("image"),
				g.Img(g.Class("profile-avatar editing"), g.Src(p.Image), g.Alt("Profile picture")),
			),
			g.Input(
				g.ID("image"),
				g.Name("image"),
				g.Type("file"),
				g.Accept("image/*"),
				cmp.Attr("hidden"),
				hx.Post("/profile/avatar"),
				hx.Encoding("multipart/form-data"),
				hx.Trigger("change"),
				hx.Target("#"+CardID),
				hx.Swap("outerHTML"),
				dis,
			),
			g.Input(g.Class("profile-name"), g.Type("text"), field("name"), g.Value(p.Name), dis),
			g.Hr(),
			section("CONTACT INFORMATION",
				row("Email id:", value(p.Email)),
				row("Phone:", g.Input(g.Type("text"), field("phone"), g.Value(p.Phone), dis)),
				row("Address:", g.Div(
					g.Input(g.Type("text"), field("line1"), g.Value(p.Address.Line1), dis),
					g.Br(),
					g.Input(g.Type("text"), field("line2"), g.Value(p.Address.Line2), dis),
				)),
			),
			section("BASIC INFORMATION",
				row("Gender:", genderSelect(p.Gender, dis)),
				row("Birthday:", dobInput(p.DOB, dis)),
				row("Pet:", value(p.Pet)),
				row("About Pet:", g.Textarea(field("aboutPet"), cmp.Attr("rows", "3"), cmp.Text(p.AboutPet), dis)),
			),
			g.Div(
				g.Class("profile-actions"),
				g.Button(
					g.Type("submit"),
					hx.Post("/profile/save"),
					hx.Encoding("multipart/form-data"),
					hx.Target("#"+CardID),
					hx.Swap("outerHTML"),
					cmp.If(data.Saving, g.Disabled()),
					cmp.If(data.Saving, cmp.Text("Saving...")),
					cmp.If(!data.Saving, cmp.Text("Save information")),
				),
			),
		),
		g.Form(
			g.Method("post"),
			g.Action("/profile/cancel"),
			g.Button(
				g.Type("submit"),
				hx.Post("/profile/cancel"),
				hx.Target("#"+CardID),
				hx.Swap("outerHTML"),
				cmp.If(data.Saving, g.Disabled()),
				cmp.Text("Cancel"),
			),
		),
	)
}

// Toasts renders queued notifications. With oob set the region replaces the page's
// toast region through an htmx out-of-band swap.
func Toasts(notes []notify.Notification, oob bool) cmp.Node {
	return g.Div(
		g.ID(ToastsID),
		cmp.If(oob, hx.SwapOOB("true")),
		cmp.Map(notes, func(n notify.Notification) cmp.Node {
			return g.Div(
				g.Class("toast toast-"+string(n.Kind)),
				cmp.Attr("role", "status"),
				cmp.Text(n.Message),
			)
		}),
	)
}

func section(title string, rows ...cmp.Node) cmp.Node {
	return g.Div(
		g.P(g.Class("profile-section"), cmp.Text(title)),
		g.Div(g.Class("profile-grid"), cmp.Group(rows)),
	)
}

func row(label string, content cmp.Node) cmp.Node {
	return cmp.Group{
		g.P(g.Class("font-medium"), cmp.Text(label)),
		content,
	}
}

func value(s string) cmp.Node {
	return g.P(g.Class("profile-value"), cmp.Text(s))
}

// field names an edit input. A change posts that one value to the draft, so an edit
// never resubmits the other fields.
func field(name string) cmp.Node {
	return cmp.Group{
		g.Name(name),
		hx.Post("/profile/draft"),
		hx.Trigger("change"),
		hx.Swap("none"),
		cmp.Attr("hx-params", name),
	}
}

// dobInput uses a date picker only for ISO dates. Browsers blank any other value of a
// date input, which would clear a stored placeholder such as "Not Selected".
func dobInput(dob string, attrs ...cmp.Node) cmp.Node {
	kind := "date"
	if _, err := time.Parse(time.DateOnly, dob); dob != "" && err != nil {
		kind = "text"
	}
	return g.Input(g.Type(kind), field("dob"), g.Value(dob), g.Placeholder("YYYY-MM-DD"), cmp.Group(attrs))
}

func genderSelect(current string, attrs ...cmp.Node) cmp.Node {
	options := append([]string{""}, domain.Genders...)
	// A stored value outside the set stays selectable so it round-trips unchanged.
	if !domain.ValidGender(current) {
		options = append(options, current)
	}
	return g.Select(
		field("gender"),
		cmp.Group(attrs),
		cmp.Map(options, func(gender string) cmp.Node {
			label := gender
			if label == "" {
				label = "Not Selected"
			}
			return g.Option(
				g.Value(gender),
				cmp.If(gender == current, g.Selected()),
				cmp.Text(label),
			)
		}),
	)
}
