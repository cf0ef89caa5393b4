package harbor

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
)

// SupportedServerRange is the range of Harbor releases serving the v2.0 API.
const SupportedServerRange = constants.MinimumServerVersion

// CompatibilityStatus is the outcome of a server version check.
type CompatibilityStatus int

const (
	// CompatibilityUnknown means the server version could not be parsed.
	CompatibilityUnknown CompatibilityStatus = iota
	// Compatible means the server version satisfies the range.
	Compatible
	// Incompatible means the server version is outside the range.
	Incompatible
)

// String returns the status name.
func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes a server version check.
type CompatibilityResult struct {
	Status         CompatibilityStatus
	ServerVersion  string
	SupportedRange string
	Message        string
}

// IsCompatible reports whether the server is usable.
func (r CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// ParseServerVersion parses a Harbor version such as "v2.10.1-a1b2c3d4".
// The leading "v" and the build suffix after the first "-" or "+" are dropped.
func ParseServerVersion(version string) (*semver.Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if idx := strings.IndexAny(trimmed, "-+"); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	parsed, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing server version %q: %w", version, err)
	}

	return parsed, nil
}

// CheckServerVersion checks version against constraint. An empty constraint
// means SupportedServerRange.
func CheckServerVersion(version, constraint string) CompatibilityResult {
	if constraint == "" {
		constraint = SupportedServerRange
	}

	result := CompatibilityResult{
		ServerVersion:  version,
		SupportedRange: constraint,
	}

	parsed, err := ParseServerVersion(version)
	if err != nil {
		result.Message = fmt.Sprintf("unable to determine compatibility: %v", err)

		return result
	}

	constraints, err := semver.NewConstraint(constraint)
	if err != nil {
		result.Message = fmt.Sprintf("invalid version constraint %q: %v", constraint, err)

		return result
	}

	if constraints.Check(parsed) {
		result.Status = Compatible
		result.Message = fmt.Sprintf("server version %s is compatible with %s", version, constraint)

		return result
	}

	result.Status = Incompatible
	result.Message = fmt.Sprintf("server version %s is not compatible with %s", version, constraint)

	return result
}

// IsCompatible reports whether version satisfies SupportedServerRange.
func IsCompatible(version string) bool {
	return CheckServerVersion(version, "").IsCompatible()
}
