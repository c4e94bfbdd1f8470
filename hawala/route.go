package hawala

import "fmt"

// ValidateRoute : path must be a simple path of at least two parties ending at origin
func ValidateRoute(path []string, origin string) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: route needs at least 2 parties, got %d", ErrInvalidRoute, len(path))
	}
	if path[len(path)-1] != origin {
		return fmt.Errorf("%w: route must end at origin %s", ErrInvalidRoute, origin)
	}
	seen := make(map[string]struct{}, len(path))
	for _, p := range path {
		if p == "" {
			return fmt.Errorf("%w: empty party in route", ErrInvalidRoute)
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: %s appears twice in route", ErrCycleDetected, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Contains : true when party is already on path
func Contains(path []string, party string) bool {
	for _, p := range path {
		if p == party {
			return true
		}
	}
	return false
}

// extend : new path with next in front, path itself is never modified
func extend(path []string, next string) ([]string, error) {
	if next == "" {
		return nil, fmt.Errorf("%w: next hop is empty", ErrInvalidRoute)
	}
	if Contains(path, next) {
		return nil, fmt.Errorf("%w: %s is already on the route", ErrCycleDetected, next)
	}
	out := make([]string, 0, len(path)+1)
	out = append(out, next)
	return append(out, path...), nil
}
