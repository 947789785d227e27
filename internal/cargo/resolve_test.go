package cargo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func artifactLine(debuginfo, executable string) string {
	return `{"reason":"compiler-artifact","profile":{"debuginfo":` + debuginfo + `},"executable":` + executable + `}`
}

func finishedLine(success bool) string {
	if success {
		return `{"reason":"build-finished","success":true}`
	}
	return `{"reason":"build-finished","success":false}`
}

func stream(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestResolveStream_SingleExecutable(t *testing.T) {
	executable, err := resolveStream(stream(
		artifactLine("1", `"a.out"`),
		finishedLine(true),
	))
	require.NoError(t, err)
	require.Equal(t, "a.out", executable)
}

func TestResolveStream_MultipleExecutables(t *testing.T) {
	_, err := resolveStream(stream(
		artifactLine("1", `"a.out"`),
		artifactLine("1", `"b.out"`),
		finishedLine(true),
	))
	require.ErrorIs(t, err, ErrMultipleExecutables)
	require.Contains(t, err.Error(), "a.out")
	require.Contains(t, err.Error(), "b.out")
}

func TestResolveStream_InsufficientDebugInfo(t *testing.T) {
	// Fails on the under-instrumented artifact regardless of later events.
	_, err := resolveStream(stream(
		artifactLine("0", `"a.out"`),
		finishedLine(true),
	))

	var insufficient *InsufficientDebugInfoError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, DebugInfoLevel(0), insufficient.DebugInfo)
	require.Contains(t, err.Error(), "debug=1")
}

func TestResolveStream_InsufficientDebugInfoAlone(t *testing.T) {
	_, err := resolveStream(stream(artifactLine("0", `"a.out"`)))

	var insufficient *InsufficientDebugInfoError
	require.ErrorAs(t, err, &insufficient)
}

func TestResolveStream_BuildFailed(t *testing.T) {
	_, err := resolveStream(stream(finishedLine(false)))
	require.ErrorIs(t, err, ErrBuildFailed)
}

func TestResolveStream_BuildFailedDiscardsRecordedArtifact(t *testing.T) {
	_, err := resolveStream(stream(
		artifactLine("2", `"a.out"`),
		finishedLine(false),
	))
	require.ErrorIs(t, err, ErrBuildFailed)
}

func TestResolveStream_NoExecutableArtifact(t *testing.T) {
	// A library build: the artifact carries debug info but no executable.
	_, err := resolveStream(stream(
		artifactLine("2", `null`),
		finishedLine(true),
	))
	require.ErrorIs(t, err, ErrNoArtifact)
}

func TestResolveStream_EmptyStream(t *testing.T) {
	_, err := resolveStream(strings.NewReader(""))
	require.ErrorIs(t, err, ErrMalformedStream)
}

func TestResolveStream_NoFinishMessage(t *testing.T) {
	_, err := resolveStream(stream(artifactLine("1", `"a.out"`)))
	require.ErrorIs(t, err, ErrMalformedStream)
}

func TestResolveStream_UnknownMessagesAreSkipped(t *testing.T) {
	executable, err := resolveStream(stream(
		`{"reason":"compiler-message","message":{"rendered":"warning: unused"}}`,
		artifactLine(`"limited"`, `"a.out"`),
		`{"reason":"build-script-executed","package_id":"x"}`,
		finishedLine(true),
	))
	require.NoError(t, err)
	require.Equal(t, "a.out", executable)
}

func TestResolveStream_StopsAtFinish(t *testing.T) {
	// Anything after build-finished is never consumed; a malformed trailing
	// line must not fail the resolution.
	executable, err := resolveStream(stream(
		artifactLine("true", `"a.out"`),
		finishedLine(true),
		`not json at all`,
	))
	require.NoError(t, err)
	require.Equal(t, "a.out", executable)
}

func TestResolveStream_ParseFailurePropagatesLine(t *testing.T) {
	_, err := resolveStream(stream(`{"reason":"build-finished"}`))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, `{"reason":"build-finished"}`, parseErr.Line)
}
