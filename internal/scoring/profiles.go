package scoring

import "fmt"

// Profile is a named weighting scheme for blending signal scores. Two schemes
// exist historically and both are preserved: the live disambiguation path
// blends three signals, the comparison/analysis path blends four.
type Profile struct {
	Name     string  `json:"name" yaml:"name"`
	Keyword  float64 `json:"keyword" yaml:"keyword"`
	Trigger  float64 `json:"trigger" yaml:"trigger"`
	Semantic float64 `json:"semantic" yaml:"semantic"`
	Starter  float64 `json:"starter" yaml:"starter"`
}

// Primary is the 3-signal profile used by the live disambiguation path.
var Primary = Profile{
	Name:     "primary",
	Keyword:  0.5,
	Trigger:  0.3,
	Semantic: 0.2,
	Starter:  0,
}

// Extended is the 4-signal profile used by the comparison/analysis path.
var Extended = Profile{
	Name:     "extended",
	Keyword:  0.3,
	Trigger:  0.4,
	Semantic: 0.2,
	Starter:  0.1,
}

// ProfileByName resolves a profile by its configured name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case Primary.Name, "":
		return Primary, nil
	case Extended.Name:
		return Extended, nil
	default:
		return Profile{}, fmt.Errorf("unknown scoring profile %q", name)
	}
}
