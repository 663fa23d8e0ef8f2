// ABOUTME: Resource CLI commands for listing, inspecting, and deleting records
// ABOUTME: Human-friendly tabular output over the shared API client
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/models"
)

// Resources lists the known resource path segments.
var Resources = []string{
	"galleries", "sermons", "lifegroups", "ministries",
	"settings", "logs", "testimonials", "give",
}

func knownResource(name string) bool {
	for _, r := range Resources {
		if r == name {
			return true
		}
	}
	return false
}

// ListCommand prints the collection for one resource.
func ListCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: list <%s>", strings.Join(Resources, "|"))
	}
	resource := rest[0]
	if !knownResource(resource) {
		return fmt.Errorf("unknown resource %q", resource)
	}

	ctx := context.Background()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	switch resource {
	case "galleries":
		items, err := api.List[models.Gallery](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tIMAGES")
		for _, g := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\n", g.ID, g.Title, len(g.Images))
		}
	case "sermons":
		items, err := api.List[models.Sermon](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tSPEAKER\tSCRIPTURE")
		for _, s := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Speaker, s.Scripture)
		}
	case "lifegroups":
		items, err := api.List[models.LifeGroup](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tLEADER\tDAY")
		for _, l := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Leader, l.MeetingDay)
		}
	case "ministries":
		items, err := api.List[models.Ministry](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tLEADER")
		for _, mi := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", mi.ID, mi.Name, mi.Leader)
		}
	case "settings":
		items, err := api.List[models.Setting](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tVALUE\tCATEGORY")
		for _, s := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Value, s.Category)
		}
	case "logs":
		items, err := api.List[models.LogEntry](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tWHEN\tACTION\tACTOR\tDETAIL")
		for _, l := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.CreatedAt.Format("2006-01-02 15:04"), l.Action, l.Actor, l.Detail)
		}
	case "testimonials":
		items, err := api.List[models.Testimonial](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tAPPROVED\tMESSAGE")
		for _, t := range items {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", t.ID, t.Name, t.Approved, t.Message)
		}
	case "give":
		items, err := api.List[models.GiveEntry](ctx, client, resource)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tMETHOD\tACCOUNT\tACTIVE\tLINKS")
		for _, g := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n", g.ID, g.Method, g.AccountName, g.Active, len(g.Links))
		}
	}
	return nil
}

// GetCommand prints one record as indented JSON.
func GetCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: get <resource> <id>")
	}
	resource, id := rest[0], models.ID(rest[1])
	if !knownResource(resource) {
		return fmt.Errorf("unknown resource %q", resource)
	}

	ctx := context.Background()
	var record any
	var err error
	switch resource {
	case "galleries":
		record, err = api.Get[models.Gallery](ctx, client, resource, id)
	case "sermons":
		record, err = api.Get[models.Sermon](ctx, client, resource, id)
	case "lifegroups":
		record, err = api.Get[models.LifeGroup](ctx, client, resource, id)
	case "ministries":
		record, err = api.Get[models.Ministry](ctx, client, resource, id)
	case "settings":
		record, err = api.Get[models.Setting](ctx, client, resource, id)
	case "logs":
		record, err = api.Get[models.LogEntry](ctx, client, resource, id)
	case "testimonials":
		record, err = api.Get[models.Testimonial](ctx, client, resource, id)
	case "give":
		record, err = api.Get[models.GiveEntry](ctx, client, resource, id)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// DeleteCommand removes one record, asking for confirmation unless --yes.
func DeleteCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: delete [--yes] <resource> <id>")
	}
	resource, id := rest[0], models.ID(rest[1])
	if !knownResource(resource) {
		return fmt.Errorf("unknown resource %q", resource)
	}
	if resource == "logs" {
		return fmt.Errorf("logs are server-managed and cannot be deleted")
	}

	if !*yes {
		fmt.Printf("Delete %s %s? This cannot be undone. [y/N]: ", strings.TrimSuffix(resource, "s"), id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := api.Delete(context.Background(), client, resource, id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %s %s\n", strings.TrimSuffix(resource, "s"), id)
	return nil
}
