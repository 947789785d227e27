package cargo

import (
	"encoding/json"
	"fmt"
)

// ParseError is a line of cargo JSON output that matched a known message kind
// but could not be decoded, or was not a cargo message at all. It carries the
// raw line so the user can see exactly what cargo emitted.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse cargo output: %v\noutput:\n%s", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

// reasons this tool acts on; everything else decodes as Unknown.
const (
	reasonCompilerArtifact = "compiler-artifact"
	reasonBuildFinished    = "build-finished"
)

// ParseMessage decodes one line of `cargo build --message-format=json`
// output. Unrecognized reason values decode as Unknown rather than failing so
// newer cargo message kinds pass through harmlessly. A line matching a known
// reason but missing required fields is a *ParseError.
func ParseMessage(line []byte) (Message, error) {
	var envelope struct {
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, &ParseError{Line: string(line), Err: err}
	}
	if envelope.Reason == nil {
		return nil, &ParseError{Line: string(line), Err: fmt.Errorf("missing reason field")}
	}

	switch *envelope.Reason {
	case reasonCompilerArtifact:
		return parseCompilerArtifact(line)
	case reasonBuildFinished:
		return parseBuildFinished(line)
	default:
		return Unknown{Reason: *envelope.Reason}, nil
	}
}

func parseCompilerArtifact(line []byte) (Message, error) {
	var raw struct {
		Profile *struct {
			DebugInfo *DebugInfo `json:"debuginfo"`
		} `json:"profile"`
		Executable *string `json:"executable"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, &ParseError{Line: string(line), Err: err}
	}
	if raw.Profile == nil || raw.Profile.DebugInfo == nil {
		return nil, &ParseError{Line: string(line), Err: fmt.Errorf("compiler-artifact message has no profile.debuginfo")}
	}

	msg := CompilerArtifact{DebugInfo: *raw.Profile.DebugInfo}
	if raw.Executable != nil {
		msg.Executable = *raw.Executable
	}
	return msg, nil
}

func parseBuildFinished(line []byte) (Message, error) {
	var raw struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, &ParseError{Line: string(line), Err: err}
	}
	if raw.Success == nil {
		return nil, &ParseError{Line: string(line), Err: fmt.Errorf("build-finished message has no success field")}
	}
	return BuildFinished{Success: *raw.Success}, nil
}
