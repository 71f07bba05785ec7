package telegram

import (
	"errors"
	"strings"
)

var ErrInvalidArguments = errors.New("invalid arguments")

// ParseAlertArgs splits "/alert <asset> <direction> <threshold>" arguments.
// Validation of the individual fields belongs to the usecase.
func ParseAlertArgs(args string) (asset, direction, threshold string, err error) {
	parts := strings.Fields(args)
	if len(parts) != 3 {
		return "", "", "", ErrInvalidArguments
	}
	return parts[0], parts[1], parts[2], nil
}

// ParseAlertID extracts the opaque alert handle from command arguments.
func ParseAlertID(args string) (string, error) {
	id := strings.TrimSpace(args)
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return "", ErrInvalidArguments
	}
	return id, nil
}

func ParseLocaleArg(args string) (string, error) {
	locale := strings.ToLower(strings.TrimSpace(args))
	if locale == "" {
		return "", ErrInvalidArguments
	}
	return locale, nil
}
