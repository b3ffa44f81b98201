// Package wipe implements C4, the multi-pass secure-overwrite engine:
// the hard-coded pass-plan tables, single-pass execution against a
// platform.Handle, and pattern-pass verification.
package wipe

import "github.com/vaultgate/gate/internal/config"

// PassKind distinguishes a Random pass (fresh CSPRNG bytes per chunk,
// never verified) from a Pattern pass (a short repeating byte pattern,
// verifiable).
type PassKind int

const (
	Random PassKind = iota
	Pattern
)

// Pass is one entry of a Plan: either Random, or Pattern with 1-3
// repeating bytes tiled over every chunk written.
type Pass struct {
	Kind    PassKind
	Pattern []byte
}

func randomPass() Pass         { return Pass{Kind: Random} }
func patternPass(p ...byte) Pass { return Pass{Kind: Pattern, Pattern: p} }

// Plan is the ordered, fixed sequence of passes for an algorithm. It is
// a pure function of the algorithm tag (I4, P2): identical across
// invocations and platforms.
type Plan []Pass

// gutmannPlan is the canonical 35-pass Gutmann table (§4.4.1), written
// out in full rather than generated, so it stays byte-identical to the
// specification regardless of how the generating loop might be
// refactored later.
var gutmannPlan = Plan{
	randomPass(), randomPass(), randomPass(), randomPass(), // 1-4
	patternPass(0x55),             // 5
	patternPass(0xAA),             // 6
	patternPass(0x92, 0x49, 0x24), // 7
	patternPass(0x49, 0x24, 0x92), // 8
	patternPass(0x24, 0x92, 0x49), // 9
	patternPass(0x00), // 10
	patternPass(0x11), // 11
	patternPass(0x22), // 12
	patternPass(0x33), // 13
	patternPass(0x44), // 14
	patternPass(0x55), // 15
	patternPass(0x66), // 16
	patternPass(0x77), // 17
	patternPass(0x88), // 18
	patternPass(0x99), // 19
	patternPass(0xAA), // 20
	patternPass(0xBB), // 21
	patternPass(0xCC), // 22
	patternPass(0xDD), // 23
	patternPass(0xEE), // 24
	patternPass(0xFF), // 25
	patternPass(0x92, 0x49, 0x24), // 26
	patternPass(0x49, 0x24, 0x92), // 27
	patternPass(0x24, 0x92, 0x49), // 28
	patternPass(0x6D, 0xB6, 0xDB), // 29
	patternPass(0xB6, 0xDB, 0x6D), // 30
	patternPass(0xDB, 0x6D, 0xB6), // 31
	randomPass(), randomPass(), randomPass(), randomPass(), // 32-35
}

// dod7Plan is the 7-pass DoD 5220.22-M table.
var dod7Plan = Plan{
	patternPass(0x00),
	patternPass(0xFF),
	randomPass(),
	patternPass(0x00),
	patternPass(0xFF),
	randomPass(),
	randomPass(),
}

// dod3Plan is the 3-pass short DoD variant.
var dod3Plan = Plan{
	randomPass(),
	randomPass(),
	randomPass(),
}

// randomPlanTable is the single-pass RANDOM algorithm.
var randomPlanTable = Plan{randomPass()}

// zeroPlan is the single-pass ZERO algorithm.
var zeroPlan = Plan{patternPass(0x00)}

// PlanFor returns the hard-coded pass plan for algorithm. VERIFY_ONLY
// returns an empty plan (zero write passes, per §4.4.1) — the caller is
// responsible for running the read-only scan separately; this function
// never substitutes a different algorithm for it (§9's open question:
// VERIFY_ONLY is never silently remapped).
func PlanFor(algorithm config.Algorithm) Plan {
	switch algorithm {
	case config.AlgorithmGutmann:
		return gutmannPlan
	case config.AlgorithmDOD7:
		return dod7Plan
	case config.AlgorithmDOD3:
		return dod3Plan
	case config.AlgorithmRandom:
		return randomPlanTable
	case config.AlgorithmZero:
		return zeroPlan
	case config.AlgorithmVerifyOnly:
		return Plan{}
	default:
		return Plan{}
	}
}
