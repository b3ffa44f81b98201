package config

// Algorithm tags a wipe plan (§3, §4.4.1). The zero value is invalid on
// purpose — a missing wipe_algorithm key must fail validation rather
// than silently defaulting to something destructive.
type Algorithm string

const (
	AlgorithmGutmann    Algorithm = "GUTMANN"
	AlgorithmDOD7       Algorithm = "DOD_7"
	AlgorithmDOD3       Algorithm = "DOD_3"
	AlgorithmRandom     Algorithm = "RANDOM"
	AlgorithmZero       Algorithm = "ZERO"
	AlgorithmVerifyOnly Algorithm = "VERIFY_ONLY"
)

func (a Algorithm) valid() bool {
	switch a {
	case AlgorithmGutmann, AlgorithmDOD7, AlgorithmDOD3, AlgorithmRandom, AlgorithmZero, AlgorithmVerifyOnly:
		return true
	}
	return false
}

// onDiskAlgorithm maps the §6 on-disk strings (and their backward
// compatibility aliases) to the internal Algorithm tag. "dod" and
// "schneier" are accepted as aliases for dod522022m per §6.
var onDiskAlgorithm = map[string]Algorithm{
	"gutmann":     AlgorithmGutmann,
	"dod522022m":  AlgorithmDOD7,
	"dod":         AlgorithmDOD7,
	"schneier":    AlgorithmDOD7,
	"dodshort":    AlgorithmDOD3,
	"random":      AlgorithmRandom,
	"zero":        AlgorithmZero,
	"verify":      AlgorithmVerifyOnly,
	"verify_only": AlgorithmVerifyOnly,
}

// algorithmOnDisk is the canonical (non-alias) on-disk spelling used when
// writing a config back out.
var algorithmOnDisk = map[Algorithm]string{
	AlgorithmGutmann:    "gutmann",
	AlgorithmDOD7:       "dod522022m",
	AlgorithmDOD3:       "dodshort",
	AlgorithmRandom:     "random",
	AlgorithmZero:       "zero",
	AlgorithmVerifyOnly: "verify",
}

// ParseAlgorithm decodes one of the §6 on-disk wipe-algorithm strings,
// including its backward-compatibility aliases. It never falls back to
// a default — an unrecognized string is an error, not a silent remap.
func ParseAlgorithm(s string) (Algorithm, bool) {
	a, ok := onDiskAlgorithm[s]
	return a, ok
}

// String renders the canonical on-disk spelling for a.
func (a Algorithm) String() string {
	if s, ok := algorithmOnDisk[a]; ok {
		return s
	}
	return string(a)
}

// MarshalYAML renders the canonical on-disk spelling.
func (a Algorithm) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes the §6 on-disk spelling (or alias) into the
// internal Algorithm tag.
func (a *Algorithm) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, ok := ParseAlgorithm(s)
	if !ok {
		*a = Algorithm(s) // left invalid on purpose; Validate() will reject it
		return nil
	}
	*a = parsed
	return nil
}
