package logic

import "fmt"

// Profile selects between the full multi-section UI and the single-screen
// variant.
type Profile struct {
	Name string
	// Number of reachable sections, starting from SectionMain
	Sections int
	// Night-mode button only works while SectionNightMode is active
	GateNightMode bool
}

var (
	ProfileExtended = Profile{Name: "extended", Sections: SectionCount, GateNightMode: true}
	ProfileSimple   = Profile{Name: "simple", Sections: 1, GateNightMode: false}
)

// ProfileByName looks up a profile by its flag value.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case ProfileExtended.Name:
		return ProfileExtended, nil
	case ProfileSimple.Name:
		return ProfileSimple, nil
	}
	return Profile{}, fmt.Errorf("unknown profile %q (want %q or %q)", name, ProfileExtended.Name, ProfileSimple.Name)
}
