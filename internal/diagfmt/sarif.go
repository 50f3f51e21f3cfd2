package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"cascade/internal/diag"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

// Sarif форматирует маркеры в SARIF v2.1.0. Every rule the engine knows is
// listed in the tool driver so ruleIndex stays stable between runs.
func Sarif(w io.Writer, files []FileMarkers, meta SarifRunMeta) error {
	kinds := diag.AllErrorKinds()
	rules := make([]sarifRule, len(kinds))
	index := make(map[diag.ErrorKind]int, len(kinds))
	for i, k := range kinds {
		rules[i] = sarifRule{ID: k.ID(), ShortDescription: sarifMessage{Text: k.Issue().Message}}
		index[k] = i
	}

	results := make([]sarifResult, 0)
	for _, fm := range files {
		if fm.Err != nil || fm.File == nil {
			continue
		}
		uri := filepath.ToSlash(fm.File.FormatPath("relative", meta.BaseDir))
		for _, m := range fm.Markers {
			if m.Level == diag.LevelIgnore {
				continue
			}
			sp := span(fm.File, m)
			start, end := fm.File.LineCol(sp.Start), fm.File.LineCol(sp.End)
			results = append(results, sarifResult{
				RuleID:    m.Kind.ID(),
				RuleIndex: index[m.Kind],
				Level:     sarifLevel(m.Level),
				Message:   sarifMessage{Text: m.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: uri},
					Region: &sarifRegion{
						StartLine:   start.Line,
						StartColumn: start.Col,
						EndLine:     end.Line,
						EndColumn:   end.Col,
						ByteOffset:  sp.Start,
						ByteLength:  sp.Len(),
					},
				}}},
			})
		}
	}

	name := meta.ToolName
	if name == "" {
		name = "cascade"
	}
	log := sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:        sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion, Rules: rules}},
			Invocations: []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}},
			Results:     results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(l diag.Level) string {
	switch l {
	case diag.LevelError:
		return "error"
	case diag.LevelWarning:
		return "warning"
	}
	return "none"
}
