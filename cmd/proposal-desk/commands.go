package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"proposal-desk/internal/models"
	"proposal-desk/internal/views/auth/login"
	"proposal-desk/internal/views/auth/register"
	"proposal-desk/internal/views/profile"
	"proposal-desk/internal/views/proposals/compose"
	"proposal-desk/internal/views/templates"
)

type command struct {
	name      string
	usage     string
	protected bool
	run       func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":        {name: "register", usage: "Create an account", run: runRegister},
	"login":           {name: "login", usage: "Sign in", run: runLogin},
	"logout":          {name: "logout", usage: "Sign out", run: runLogout},
	"whoami":          {name: "whoami", usage: "Show the signed-in user", run: runWhoami},
	"proposals":       {name: "proposals", usage: "List proposals", protected: true, run: runProposals},
	"show":            {name: "show", usage: "Show a proposal (-id, -format markdown|plain)", protected: true, run: runShow},
	"duplicate":       {name: "duplicate", usage: "Duplicate a proposal (-id)", protected: true, run: runDuplicate},
	"new":             {name: "new", usage: "Generate a proposal from the form flags", protected: true, run: runNew},
	"save":            {name: "save", usage: "Save the last generated proposal", protected: true, run: runSave},
	"templates":       {name: "templates", usage: "List templates", protected: true, run: runTemplates},
	"template-create": {name: "template-create", usage: "Create a template (-title, -content)", protected: true, run: runTemplateCreate},
	"profile":         {name: "profile", usage: "Rename the signed-in user (-name)", protected: true, run: runProfile},
}

// Dispatch runs one command line. Protected commands redirect to login without a session.
func (a *App) Dispatch(ctx context.Context, name string, args []string) error {
	if name == "help" {
		printUsage(a.out)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, run help for the list", name)
	}
	if cmd.protected && !a.session.Snapshot().IsAuthenticated() {
		a.navigate(a.cfg.API.LoginPath)
		return fmt.Errorf("sign in first")
	}
	return cmd.run(a, ctx, args)
}

func newFlagSet(a *App, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func runRegister(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "register")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.register.Handle(ctx, register.Input{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s. Redirecting to %s\n", out.User.Name, out.Redirect)
	return nil
}

func runLogin(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "login")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.login.Handle(ctx, login.Input{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s. Redirecting to %s\n", out.User.Email, out.Redirect)
	return nil
}

func runLogout(a *App, ctx context.Context, _ []string) error {
	out, err := a.logout.Handle(ctx)
	if err != nil {
		return err
	}
	a.lastDraft = nil
	fmt.Fprintf(a.out, "Signed out. Redirecting to %s\n", out.Redirect)
	return nil
}

func runWhoami(a *App, _ context.Context, _ []string) error {
	user, ok := a.session.User()
	if !ok || !a.session.Snapshot().IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> plan=%s backend=%s\n", user.Name, user.Email, user.Plan, a.backend.Name())
	return nil
}

func runProposals(a *App, ctx context.Context, _ []string) error {
	out, err := a.dashboard.Handle(ctx)
	if err != nil {
		return err
	}
	if len(out.Proposals) == 0 {
		fmt.Fprintln(a.out, "No proposals yet. Run new to create one.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tSTATUS\tCREATED")
	for _, p := range out.Proposals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.ProjectTitle, p.ClientLabel(), p.Status.Label(), models.ShortDate(p.CreatedAt))
	}
	w.Flush()
	fmt.Fprintf(a.out, "%d proposals, %d drafts, %d sent\n", len(out.Proposals), out.Drafts, out.Sent)
	return nil
}

func runShow(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "show")
	id := fs.String("id", "", "Proposal id")
	format := fs.String("format", "markdown", "Output format: markdown or plain")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p, err := a.detail.Load(ctx, *id)
	if err != nil {
		return err
	}
	switch *format {
	case "plain":
		fmt.Fprintln(a.out, a.detail.PlainText(*p))
	case "markdown":
		fmt.Fprint(a.out, a.renderer.Render(a.detail.Markdown(*p)))
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	return nil
}

func runDuplicate(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "duplicate")
	id := fs.String("id", "", "Proposal id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p, err := a.detail.Load(ctx, *id)
	if err != nil {
		return err
	}
	out, err := a.detail.Duplicate(ctx, *p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s. Redirecting to %s\n", out.Proposal.ProjectTitle, out.Redirect)
	return nil
}

func runNew(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "new")
	client := fs.String("client", "", "Client name (required)")
	company := fs.String("company", "", "Client company")
	title := fs.String("title", "", "Project title (required)")
	description := fs.String("description", "", "Project description (required)")
	budget := fs.String("budget", "", "Budget range")
	timeline := fs.String("timeline", "", "Timeline")
	services := fs.String("services", "", "Comma separated services")
	tone := fs.String("tone", string(models.ToneProfessional), "Tone: professional, friendly, bold or minimal")
	templateID := fs.String("template", "", "Seed the description from a template id")
	save := fs.Bool("save", false, "Save the generated proposal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := compose.Form{}
	if *templateID != "" {
		tmpl, err := findTemplate(a, ctx, *templateID)
		if err != nil {
			return err
		}
		form = a.templates.Apply(tmpl)
	}
	form.ClientName = *client
	form.ClientCompany = *company
	form.ProjectTitle = *title
	if *description != "" {
		form.ProjectDescription = *description
	}
	form.BudgetRange = *budget
	form.Timeline = *timeline
	form.Services = splitList(*services)
	form.Tone = models.Tone(*tone)

	draft, err := a.compose.Generate(ctx, form)
	if err != nil {
		return err
	}
	a.lastDraft = draft

	for _, sec := range models.SectionOrder {
		fmt.Fprintf(a.out, "== %s ==\n%s\n\n", sec.Title, draft.Rendered(sec.Key))
	}
	if len(draft.Missing) > 0 {
		fmt.Fprintf(a.out, "Missing sections: %s\n", strings.Join(draft.Missing, ", "))
	}

	if *save {
		return runSave(a, ctx, nil)
	}
	fmt.Fprintln(a.out, "Run save to store this proposal.")
	return nil
}

func runSave(a *App, ctx context.Context, _ []string) error {
	out, err := a.compose.Save(ctx, a.lastDraft)
	if err != nil {
		return err
	}
	a.lastDraft = nil
	fmt.Fprintf(a.out, "Saved %s. Redirecting to %s\n", out.Proposal.ID, out.Redirect)
	return nil
}

func runTemplates(a *App, ctx context.Context, _ []string) error {
	out, err := a.templates.List(ctx)
	if err != nil {
		return err
	}
	if len(out.Templates) == 0 {
		fmt.Fprintln(a.out, "No templates yet. Run template-create to add one.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED")
	for _, t := range out.Templates {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Title, models.ShortDate(t.CreatedAt))
	}
	return w.Flush()
}

func runTemplateCreate(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "template-create")
	title := fs.String("title", "", "Template title")
	content := fs.String("content", "", "Template content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.templates.Create(ctx, templates.CreateInput{Title: *title, Content: *content})
	if out != nil {
		fmt.Fprintf(a.out, "Created template %s (%d total)\n", out.Template.ID, len(out.Templates))
	}
	return err
}

func runProfile(a *App, ctx context.Context, args []string) error {
	fs := newFlagSet(a, "profile")
	name := fs.String("name", "", "New display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.profile.Handle(ctx, profile.Input{Name: *name})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out.Message)
	return nil
}

func findTemplate(a *App, ctx context.Context, id string) (models.Template, error) {
	out, err := a.templates.List(ctx)
	if err != nil {
		return models.Template{}, err
	}
	for _, t := range out.Templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Template{}, fmt.Errorf("template %s not found", id)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage: proposal-desk [-config path] <command> [options]")
	fmt.Fprintln(w, "Commands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, commands[name].usage)
	}
	fmt.Fprintf(tw, "  %s\t%s\n", "shell", "Interactive session, keeps simulated data between commands")
	fmt.Fprintf(tw, "  %s\t%s\n", "help", "Show this help message")
	tw.Flush()
}
