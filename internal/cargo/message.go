// Package cargo drives `cargo build` in JSON message mode and resolves the
// single debuggable executable a build produces.
package cargo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Message is one decoded line of cargo's --message-format=json output.
type Message interface {
	isMessage()
}

// CompilerArtifact reports a build artifact and the debug-info setting of the
// profile it was compiled under. Executable is empty for non-executable
// artifacts (libraries, build scripts).
type CompilerArtifact struct {
	DebugInfo  DebugInfo
	Executable string
}

// BuildFinished is cargo's final message for a build invocation.
type BuildFinished struct {
	Success bool
}

// Unknown is any message whose reason this tool does not recognize. Newer
// cargo versions add message kinds; they must never break resolution.
type Unknown struct {
	Reason string
}

func (CompilerArtifact) isMessage() {}
func (BuildFinished) isMessage()    {}
func (Unknown) isMessage()          {}

type debugInfoKind int

const (
	debugInfoUnset debugInfoKind = iota
	debugInfoLevel
	debugInfoFlag
	debugInfoName
)

// DebugInfo is cargo's profile.debuginfo setting. Cargo has represented the
// same concept as a numeric level, a boolean, and a named string level across
// versions; exactly one shape is present per instance.
type DebugInfo struct {
	kind    debugInfoKind
	level   int
	enabled bool
	name    string
}

// DebugInfoLevel returns the numeric-level shape. Used by tests and callers
// constructing settings outside of JSON decoding.
func DebugInfoLevel(level int) DebugInfo {
	return DebugInfo{kind: debugInfoLevel, level: level}
}

// DebugInfoFlag returns the boolean shape.
func DebugInfoFlag(enabled bool) DebugInfo {
	return DebugInfo{kind: debugInfoFlag, enabled: enabled}
}

// DebugInfoName returns the named-string shape.
func DebugInfoName(name string) DebugInfo {
	return DebugInfo{kind: debugInfoName, name: name}
}

// UnmarshalJSON accepts a JSON number, boolean, or string.
func (d *DebugInfo) UnmarshalJSON(data []byte) error {
	var level int
	if err := json.Unmarshal(data, &level); err == nil {
		*d = DebugInfoLevel(level)
		return nil
	}
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		*d = DebugInfoFlag(enabled)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*d = DebugInfoName(name)
		return nil
	}
	return fmt.Errorf("debuginfo must be a number, boolean, or string, got %s", data)
}

// Sufficient reports whether the setting carries at least line-level
// source correlation, the minimum a debugger needs. A value outside cargo's
// documented range means the contract this tool was written against has
// changed; that is unrecoverable and panics.
func (d DebugInfo) Sufficient() bool {
	switch d.kind {
	case debugInfoLevel:
		switch d.level {
		case 0:
			return false
		case 1, 2:
			return true
		default:
			panic(fmt.Sprintf("invalid debuginfo level: %d", d.level))
		}
	case debugInfoFlag:
		return d.enabled
	case debugInfoName:
		switch d.name {
		case "none", "line-directives-only", "line-tables-only":
			return false
		case "limited", "full":
			return true
		default:
			panic(fmt.Sprintf("invalid debuginfo value: %q", d.name))
		}
	default:
		panic("debuginfo setting is unset")
	}
}

func (d DebugInfo) String() string {
	switch d.kind {
	case debugInfoLevel:
		return strconv.Itoa(d.level)
	case debugInfoFlag:
		return strconv.FormatBool(d.enabled)
	case debugInfoName:
		return d.name
	default:
		return "<unset>"
	}
}
