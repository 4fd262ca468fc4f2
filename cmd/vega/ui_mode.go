package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode controls whether `vega check` drives the interactive progress
// view. Auto defers to the terminal check at startup.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if normalized == "" {
		normalized = string(uiModeAuto)
	}
	switch mode := uiMode(normalized); mode {
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI resolves auto mode against stdout. Forced modes win so
// scripts can pin the behavior regardless of where output goes.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiModeAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiModeOn
}

func errInvalidColorMode(mode string) error {
	return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}
