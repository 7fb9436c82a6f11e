package version

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare returns -1, 0 or 1 ordering v1 against v2.
//
// Dot-separated parts are compared left to right. Two numeric parts compare
// by value, a numeric part sorts before a non-numeric one, and two
// non-numeric parts compare as strings. When one name is a prefix of the
// other the shorter one is older. Names that are still equal ("1.09" and
// "1.9") fall back to plain string order, so Compare is a total order.
func Compare(v1, v2 string) int {
	p1 := strings.Split(v1, ".")
	p2 := strings.Split(v2, ".")

	for i := 0; i < len(p1) && i < len(p2); i++ {
		if c := comparePart(p1[i], p2[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(p1) < len(p2):
		return -1
	case len(p1) > len(p2):
		return 1
	}
	return strings.Compare(v1, v2)
}

func comparePart(a, b string) int {
	n1, err1 := strconv.Atoi(a)
	n2, err2 := strconv.Atoi(b)

	switch {
	case err1 == nil && err2 == nil:
		switch {
		case n1 < n2:
			return -1
		case n1 > n2:
			return 1
		}
		return 0
	case err1 == nil:
		return -1
	case err2 == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// CompareVersions returns true if v1 is older than v2.
//
// Examples:
//   - CompareVersions("1.9.5", "1.9.40") → true
//   - CompareVersions("100.0.0", "9.0.0") → false
//   - CompareVersions("1.9", "1.9.0") → true (shorter is older)
func CompareVersions(v1, v2 string) bool {
	return Compare(v1, v2) < 0
}

// Sort orders versions ascending in place.
//
// When every name parses as a semantic version the set is ordered by semver
// precedence, so "1.9.57-rc1" comes before "1.9.57". Otherwise the whole set
// is ordered with Compare. One rule applies to the whole slice.
func Sort(versions []string) {
	if parsed, ok := parseAll(versions); ok {
		sort.Stable(semverSet{names: versions, parsed: parsed})
		return
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) < 0
	})
}

func parseAll(versions []string) ([]*semver.Version, bool) {
	parsed := make([]*semver.Version, len(versions))
	for i, v := range versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			return nil, false
		}
		parsed[i] = sv
	}
	return parsed, true
}

// semverSet sorts names by their parsed versions, breaking semver ties
// ("1.9" and "1.9.0") by string order.
type semverSet struct {
	names  []string
	parsed []*semver.Version
}

func (s semverSet) Len() int { return len(s.names) }

func (s semverSet) Less(i, j int) bool {
	if c := s.parsed[i].Compare(s.parsed[j]); c != 0 {
		return c < 0
	}
	return s.names[i] < s.names[j]
}

func (s semverSet) Swap(i, j int) {
	s.names[i], s.names[j] = s.names[j], s.names[i]
	s.parsed[i], s.parsed[j] = s.parsed[j], s.parsed[i]
}
