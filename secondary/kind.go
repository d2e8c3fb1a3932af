package secondary

import (
	"fmt"
	"strings"
)

// Kind identifies the primary particle whose secondaries are evaluated.
type Kind int

const (
	Muon Kind = iota
	Pi0
	PiCh
)

var kindNames = [...]string{
	Muon: "muon",
	Pi0:  "pi0",
	PiCh: "piCh",
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{Muon, Pi0, PiCh}
}

// ParseKind parses a kind name; matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSpace(s)
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("secondary: unknown particle kind %q (want muon, pi0 or piCh)", s)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// TableFile is the raw spectrum file name inside the data root.
func (k Kind) TableFile() string {
	return k.String() + "_normed.dat"
}

// ArtifactName is the cache artifact name for the fitted interpolator.
func (k Kind) ArtifactName() string {
	return k.String() + "_secondaries"
}

func (k Kind) valid() bool {
	return k >= Muon && k <= PiCh
}
