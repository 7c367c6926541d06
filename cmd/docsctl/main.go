package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"docs-editor/app"
	"docs-editor/pkg/config"
	"docs-editor/pkg/db"
	"docs-editor/pkg/doctree"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

const DocsCtlVersion = "0.1.0"

func main() {
	usage := `Documentation editor control.

Usage:
    docsctl list [--env=<path>]
    docsctl export <project_id> [--env=<path>] [--yaml]
    docsctl seed <file> [--env=<path>] [--project_id=<id>]
    docsctl demo [--env=<path>] [--project_id=<id>]

Options:
    -h --help             Show this screen.
    --version             Show version.
    --env=<path>          .env file to load [default: .env].
    --yaml                Write YAML instead of JSON.
    --project_id=<id>     Override the project id of the stored tree.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], DocsCtlVersion)
	if err != nil {
		panic(err)
	}

	flag.Set("logtostderr", "true")
	defer glog.Flush()

	envFile, _ := opts.String("--env")
	store, err := app.OpenStore(config.Load(envFile))
	if err != nil {
		glog.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if list_, _ := opts.Bool("list"); list_ {
		err = list(store)
	} else if export_, _ := opts.Bool("export"); export_ {
		err = export(store, opts)
	} else if seed_, _ := opts.Bool("seed"); seed_ {
		err = seed(store, opts)
	} else if demo_, _ := opts.Bool("demo"); demo_ {
		err = create(store, doctree.DemoProject(), opts)
	}
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func list(store db.IProjectStore) error {
	projects, err := store.ListProjects()
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Printf("%s\tv%d\t%d sections\t%s\n", p.ID, p.Version, len(p.Tree.Sections), p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func export(store db.IProjectStore, opts docopt.Opts) error {
	id, _ := opts.String("<project_id>")
	project, err := store.GetProject(id)
	if err != nil {
		return fmt.Errorf("export %s: %w", id, err)
	}

	var out []byte
	if asYAML, _ := opts.Bool("--yaml"); asYAML {
		out, err = yaml.Marshal(project.Tree)
	} else {
		out, err = json.MarshalIndent(project.Tree, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// seed reads a project tree from a YAML (or JSON) file and stores it
func seed(store db.IProjectStore, opts docopt.Opts) error {
	path, _ := opts.String("<file>")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tree doctree.Project
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return create(store, &tree, opts)
}

func create(store db.IProjectStore, tree *doctree.Project, opts docopt.Opts) error {
	if id, _ := opts.String("--project_id"); id != "" {
		tree.ProjectID = id
	}
	project, err := store.CreateProject(tree)
	if err != nil {
		return err
	}
	glog.Infof("created project %s with %d sections", project.ID, len(project.Tree.Sections))
	fmt.Println(project.ID)
	return nil
}
