package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/diag"
)

const diagnosticSource = "cascade"

func (d *document) publishParams() protocol.PublishDiagnosticsParams {
	params := protocol.PublishDiagnosticsParams{
		URI:         d.uri,
		Diagnostics: d.diagnostics(),
	}
	if d.version >= 0 {
		v := protocol.UInteger(d.version)
		params.Version = &v
	}
	return params
}

func (d *document) diagnostics() []protocol.Diagnostic {
	markers := d.result.Markers()
	out := make([]protocol.Diagnostic, 0, len(markers))
	for _, m := range markers {
		out = append(out, toDiagnostic(d, m))
	}
	return out
}

func toDiagnostic(d *document, m diag.Marker) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if m.Level == diag.LevelWarning {
		severity = protocol.DiagnosticSeverityWarning
	}
	src := diagnosticSource
	return protocol.Diagnostic{
		Range:    rangeFor(d.file, m.Offset, m.Length),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: m.Kind.ID()},
		Source:   &src,
		Message:  m.Message,
	}
}
