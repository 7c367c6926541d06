package main

import (
	"flag"

	"docs-editor/app"
	"docs-editor/pkg/config"

	"github.com/golang/glog"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default .env)")
	flag.Parse()
	defer glog.Flush()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg := config.Load(files...)

	server, err := app.NewServer(cfg)
	if err != nil {
		glog.Fatalf("Failed to start server: %v", err)
	}
	defer server.Close()

	glog.Fatal(server.Start(""))
}
