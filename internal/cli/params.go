package cli

import (
	"strings"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
)

// parseParams turns key=value arguments into a parameter map. Later
// duplicates win. Values may contain '='.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidParam, "expected key=value, got %q", arg)
		}
		key = strings.TrimSpace(key)
		if err := errs.ValidateParamKey(key); err != nil {
			return nil, err
		}
		params[key] = value
	}
	return params, nil
}
