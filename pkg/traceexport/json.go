package traceexport

import (
	"encoding/json"
	"os"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/pass"
	"github.com/dshills/roguecore/pkg/rerr"
)

// Document is the full JSON export shape: the artifact plus, when
// present, the trace of how it was produced.
type Document struct {
	Artifact *dungeonstate.Artifact `json:"artifact"`
	Trace    *pass.Trace            `json:"trace,omitempty"`
}

// ExportJSON serializes artifact and (optionally) trace to indented JSON.
func ExportJSON(artifact *dungeonstate.Artifact, trace *pass.Trace) ([]byte, error) {
	if artifact == nil {
		return nil, rerr.New(rerr.CodeConfigInvalid, "cannot export a nil artifact")
	}
	doc := Document{Artifact: artifact, Trace: trace}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, rerr.Wrap(err, rerr.CodeGenerationFailed, "marshaling trace export JSON")
	}
	return data, nil
}

// SaveJSONToFile writes ExportJSON's output to path with 0644 permissions.
func SaveJSONToFile(artifact *dungeonstate.Artifact, trace *pass.Trace, path string) error {
	data, err := ExportJSON(artifact, trace)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerr.Wrap(err, rerr.CodeGenerationFailed, "writing trace export JSON to "+path)
	}
	return nil
}
