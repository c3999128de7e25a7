package main

import (
	"regexp"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

// firstPath returns the first positional argument, defaulting to ".".
func firstPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

var relativeDateRe = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseRelativeDate converts shorthand like 7d, 2w, 3m, or 1y into an ISO
// date. Anything else passes through unchanged for git to interpret.
func parseRelativeDate(s string) string {
	m := relativeDateRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return s
	}

	now := time.Now()
	var then time.Time
	switch m[2] {
	case "d":
		then = now.AddDate(0, 0, -n)
	case "w":
		then = now.AddDate(0, 0, -7*n)
	case "m":
		then = now.AddDate(0, -n, 0)
	case "y":
		then = now.AddDate(-n, 0, 0)
	}
	return then.Format("2006-01-02")
}
