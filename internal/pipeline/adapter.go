package pipeline

import (
	"fmt"
	"sort"

	"go-sft-pipeline/internal/model"
)

// AdapterFunc is the one capability every source implements: a pure, stateless
// mapping from one raw layout to canonical records. It returns the records,
// the number of raw rows consumed (after sample truncation), and an error for
// missing or malformed input.
type AdapterFunc func(inputPath string, sampleSize int) ([]model.ConversationRecord, int, error)

// Dataset pairs a registry entry with its adapter.
type Dataset struct {
	Spec    model.DatasetSpec
	Process AdapterFunc
}

// Registry maps dataset names to their adapters. Input paths are relative to
// the configured raw-data root, output paths to the canonical output root.
var Registry = map[string]Dataset{
	"openhermes2_5": {
		Spec: model.DatasetSpec{
			Name:       "openhermes2_5",
			InputPath:  "teknium_OpenHermes-2.5/openhermes2_5.json",
			OutputPath: "openhermes2_5.json",
			SampleSize: 1000,
		},
		Process: ProcessOpenHermes,
	},
	"softage_multi_turn": {
		Spec: model.DatasetSpec{
			Name:       "softage_multi_turn",
			InputPath:  "SoftAge-AI_multi-turn_dataset/multi-turn_prompts.csv",
			OutputPath: "softage_multi_turn.json",
			SampleSize: 400,
		},
		Process: ProcessSoftAge,
	},
	"toolace": {
		Spec: model.DatasetSpec{
			Name:       "toolace",
			InputPath:  "Team-ACE_ToolACE/data.json",
			OutputPath: "toolace.json",
			SampleSize: 1000,
		},
		Process: ProcessToolACE,
	},
	"tulu_v3": {
		Spec: model.DatasetSpec{
			Name:       "tulu_v3",
			InputPath:  "allenai_tulu-3-sft-mixture/data",
			OutputPath: "tulu_v3.json",
			SampleSize: 50000,
		},
		Process: ProcessTulu,
	},
}

// Lookup resolves a dataset name against the registry.
func Lookup(name string) (Dataset, error) {
	ds, ok := Registry[name]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset: %s (known: %v)", name, DatasetNames())
	}
	return ds, nil
}

// DatasetNames returns all registered dataset names, sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
