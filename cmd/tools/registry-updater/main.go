// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"proposal-desk/pkg/registry"
)

const defaultRegistryPath = "configs/route-registry.json"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	exportPath := exportCmd.String("path", defaultRegistryPath, "Where to write the built-in route table")
	force := exportCmd.Bool("force", false, "Overwrite an existing file")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	op := updateCmd.String("op", "", "Operation to update (e.g., generateProposal)")
	field := updateCmd.String("field", "", "Field to update (latency, description, public)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")
	listPath := listCmd.String("path", "", "Path to registry file (built-in table when empty)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRegistry(*exportPath, *force); err != nil {
			fmt.Printf("Error exporting registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote route registry to %s\n", *exportPath)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *op == "" || *field == "" || *value == "" {
			fmt.Println("Error: op, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateRoute(*updatePath, *op, *field, *value); err != nil {
			fmt.Printf("Error updating route: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated route %s, field %s to %s\n", *op, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "list":
		listCmd.Parse(os.Args[2:])
		reg := registry.Default()
		if *listPath != "" {
			loaded, err := registry.LoadRegistry(*listPath)
			if err != nil {
				fmt.Printf("Error loading registry: %v\n", err)
				os.Exit(1)
			}
			reg = loaded
		}
		listRoutes(reg)

	case "help":
		fallthrough
	default:
		help()
	}
}

func exportRegistry(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use -force to overwrite", path)
	}
	return registry.Default().Save(path)
}

func updateRoute(path, op, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Routes {
		if reg.Routes[i].Operation != op {
			continue
		}
		found = true
		switch field {
		case "latency":
			reg.Routes[i].Latency = registry.LatencyClass(value)
		case "description":
			reg.Routes[i].Description = value
		case "public":
			reg.Routes[i].Public = value == "true"
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		break
	}

	if !found {
		return fmt.Errorf("route %s not found", op)
	}

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("update would leave an invalid registry: %w", err)
	}
	return reg.Save(path)
}

func listRoutes(reg *registry.RouteRegistry) {
	routes := append([]registry.Route(nil), reg.Routes...)
	sort.SliceStable(routes, func(i, j int) bool { return routes[i].Pattern < routes[j].Pattern })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tMETHOD\tPATTERN\tLATENCY\tAUTH\tERRORS")
	for _, r := range routes {
		auth := "bearer"
		if r.Public {
			auth = "public"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Operation, r.Method, r.Pattern, r.Latency, auth, strings.Join(r.ErrorCodes, ","))
	}
	w.Flush()
}

func help() {
	fmt.Println("Usage: registry-updater <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  export    Write the built-in route table to a file")
	fmt.Println("  update    Update a field of a route")
	fmt.Println("  validate  Validate a registry file")
	fmt.Println("  list      Print the routes")
	fmt.Println("  help      Show this help message")
}
