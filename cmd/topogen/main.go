package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"topogen/internal/codec"
	"topogen/internal/config"
	"topogen/internal/repository"
	"topogen/internal/repository/sqlite"
	"topogen/internal/service"
)

const usage = `Usage: topogen <command> [flags] <topology.graphml>

Commands:
  ns3     generate ns-3 C++ simulation program
  mesh    generate peer-mesh configuration (JSON5)
  graph   generate Graphviz DOT document
  model   dump the canonical topology model (YAML)
  all     generate every artifact into the output directory

Flags:
  -o      output file (or directory for "all")
  -n      experiment name (default: input file's directory name)
  -record record the run in the manifest database
`

// defaultOutputs maps command to the conventional artifact file name.
var defaultOutputs = map[string]string{
	"ns3":   "topology.cc",
	"mesh":  "NETWORK_CONFIG.json5",
	"graph": "topology.dot",
	"model": "topology.yaml",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	if _, ok := defaultOutputs[command]; !ok && command != "all" {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	fs := flag.NewFlagSet("topogen "+command, flag.ExitOnError)
	output := fs.String("o", "", "output file (or directory for \"all\")")
	name := fs.String("n", "", "experiment name")
	record := fs.Bool("record", false, "record the run in the manifest database")
	fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	inputPath := fs.Arg(0)

	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	}

	experiment := *name
	if experiment == "" {
		experiment = cfg.Experiment
	}
	if experiment == "" {
		experiment = experimentFromPath(inputPath)
	}

	var repo repository.Repository
	if *record || cfg.Manifest.Enabled {
		sqlRepo, err := sqlite.New(cfg.Manifest.Path)
		if err != nil {
			log.Fatalf("Failed to open manifest database: %v", err)
		}
		defer sqlRepo.Close()
		repo = sqlRepo
	}

	req := service.Request{
		InputPath:  inputPath,
		Experiment: experiment,
		Artifacts:  artifactSpecs(command, cfg, experiment, *output, inputPath),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	run, err := service.New(repo).Run(ctx, req)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	for _, art := range run.Artifacts {
		log.Printf("Generated %s artifact: %s", art.Format, art.Path)
	}
	if repo != nil {
		log.Printf("Run recorded: %s", run.ID)
	}
	log.Printf("Experiment: %s, Nodes: %d, Links: %d", experiment, run.NodeCount, run.EdgeCount)
}

// artifactSpecs builds the generator set and output paths for a command.
func artifactSpecs(command string, cfg *config.Config, experiment, output, inputPath string) []service.ArtifactSpec {
	gens := map[string]codec.Generator{
		"ns3": codec.NewNS3Generator(),
		"mesh": codec.NewMeshGenerator(codec.MeshOptions{
			Experiment: experiment,
			ImageTag:   cfg.Mesh.ImageTag,
			CleanFirst: cfg.Mesh.CleanFirst,
			VolumePath: cfg.Mesh.VolumePath,
		}),
		"graph": codec.NewDOTGenerator(codec.DOTOptions{
			Layout: cfg.Render.Layout,
			DPI:    cfg.Render.DPI,
		}),
		"model": codec.NewModelGenerator(),
	}

	if command != "all" {
		return []service.ArtifactSpec{{
			Generator: gens[command],
			Path:      singleOutputPath(command, output, inputPath),
		}}
	}

	dir := output
	if dir == "" {
		dir = "."
	}
	specs := make([]service.ArtifactSpec, 0, len(gens))
	for _, cmd := range []string{"ns3", "mesh", "graph", "model"} {
		specs = append(specs, service.ArtifactSpec{
			Generator: gens[cmd],
			Path:      filepath.Join(dir, defaultOutputs[cmd]),
		})
	}
	return specs
}

// singleOutputPath resolves the output file for a single-artifact
// command. Graph and model outputs inherit the input file's stem.
func singleOutputPath(command, output, inputPath string) string {
	if output != "" {
		return output
	}
	if command == "graph" || command == "model" {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return stem + filepath.Ext(defaultOutputs[command])
	}
	return defaultOutputs[command]
}

// experimentFromPath derives the experiment name from the input file's
// directory, matching the one-config-per-experiment-directory layout.
func experimentFromPath(inputPath string) string {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		abs = inputPath
	}
	name := filepath.Base(filepath.Dir(abs))
	if name == "." || name == string(filepath.Separator) {
		return "topology"
	}
	return name
}
