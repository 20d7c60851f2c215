package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/pipeline"
	"go-sft-pipeline/internal/store"
	"go-sft-pipeline/internal/template"
)

func main() {
	configDir := flag.String("config", "configs", "directory of YAML configuration files")
	dataset := flag.String("dataset", "", `dataset to process (a registered name, or "all" for every configured dataset)`)
	aggregate := flag.Bool("aggregate", false, "aggregate canonical datasets and write the train/test split")
	extendTokenizer := flag.Bool("extend-tokenizer", false, "render the chat template into the extended model's tokenizer config")
	dbPath := flag.String("db", "pipeline.db", "run-tracking database path")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := store.InitDB(*dbPath); err != nil {
		fmt.Printf("Error: failed to open run store: %v\n", err)
		os.Exit(1)
	}

	var names []string
	switch *dataset {
	case "":
	case "all":
		names = cfg.Source.Data.DatasetName
	default:
		names = []string{*dataset}
	}

	if len(names) == 0 && !*aggregate && !*extendTokenizer {
		fmt.Println("Nothing to do. Pass --dataset <name|all>, --aggregate or --extend-tokenizer.")
		fmt.Printf("Registered datasets: %v\n", pipeline.DatasetNames())
		return
	}

	for _, name := range names {
		if err := pipeline.RunDataset(cfg, name); err != nil {
			fmt.Println("--- A processing error occurred ---")
			fmt.Printf("Error: %v\n", err)
		}
	}

	if *aggregate {
		if err := pipeline.RunAggregation(cfg); err != nil {
			fmt.Println("--- A processing error occurred ---")
			fmt.Printf("Error: %v\n", err)
		}
	}

	if *extendTokenizer {
		tmpl, err := template.Load(cfg.Source.Template.Path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		target := filepath.Join(cfg.Source.Model.ExtendedModelPath, cfg.Source.Model.ModelName)
		if err := template.UpdateTokenizerConfig(target, tmpl); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
