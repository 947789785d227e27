package cargo

import "fmt"

// Invocation selects what cargo builds: target, features, and nothing else.
// The same invocation is used for both the JSON resolution run and the
// human-readable diagnostic re-run, so the two always build the same thing.
type Invocation struct {
	Package string
	Bin     string
	Example string
	Tests   bool
	Test    string
	Bench   string

	Features          []string
	AllFeatures       bool
	NoDefaultFeatures bool
}

// buildArgs returns the argv passed to the cargo binary. jsonOutput selects
// structured per-step messages on stdout; without it cargo prints its normal
// human-readable progress.
func (inv Invocation) buildArgs(jsonOutput bool) []string {
	args := []string{"build"}

	if jsonOutput {
		args = append(args, "--message-format=json")
	}
	if inv.Package != "" {
		args = append(args, fmt.Sprintf("--package=%s", inv.Package))
	}
	if inv.Bin != "" {
		args = append(args, fmt.Sprintf("--bin=%s", inv.Bin))
	}
	if inv.Example != "" {
		args = append(args, fmt.Sprintf("--example=%s", inv.Example))
	}
	if inv.Tests {
		args = append(args, "--tests")
	}
	if inv.Test != "" {
		args = append(args, fmt.Sprintf("--test=%s", inv.Test))
	}
	if inv.Bench != "" {
		args = append(args, fmt.Sprintf("--bench=%s", inv.Bench))
	}
	for _, feature := range inv.Features {
		args = append(args, "-F", feature)
	}
	if inv.AllFeatures {
		args = append(args, "--all-features")
	}
	if inv.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}

	return args
}
