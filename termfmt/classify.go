// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package termfmt

import "regexp"

// columnType identifies the semantic type of a column's values.
type columnType int

const (
	colText     columnType = iota // default FG
	colNumber                    // yellow
	colDateTime                  // cyan
	colPath                      // green
)

var (
	reColNumber   = regexp.MustCompile(`^-?[0-9][0-9,.]*%?$`)
	reColDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{1,3}[dhms]|<?\d+[dhms](\d+[dhms])*>?|\d{2}:\d{2}(:\d{2})?|\d{1,2}[A-Z][a-z]{2}\d{2,4}|\d+\.\d+[dhms])$`)
	reColPath     = regexp.MustCompile(`[/\\]|^\.\w+$|^[\w.-]+\.\w{1,5}$`)
)

func (t columnType) ansi() string {
	switch t {
	case colNumber:
		return ansiYellow
	case colDateTime:
		return ansiCyan
	case colPath:
		return ansiGreen
	default:
		return ""
	}
}

// classifyValues determines the column type from cell values. A
// majority of non-empty values determines number and datetime; path
// uses a lower threshold because paths are distinctive.
func classifyValues(values []string, opts Options) columnType {
	numCount, dateCount, pathCount, total := 0, 0, 0, 0
	for _, val := range values {
		if val == "" || val == "-" || val == "<none>" {
			continue
		}
		total++
		if reColNumber.MatchString(val) {
			numCount++
		} else if reColDateTime.MatchString(val) {
			dateCount++
		} else if reColPath.MatchString(val) {
			pathCount++
		}
	}
	if total == 0 {
		return colText
	}
	if numCount*100/total >= opts.NumberThreshold {
		return colNumber
	}
	if dateCount*100/total >= opts.DateTimeThreshold {
		return colDateTime
	}
	if pathCount*100/total >= opts.PathThreshold {
		return colPath
	}
	return colText
}
