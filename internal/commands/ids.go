package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIDRequired is returned when no id argument is given.
var ErrIDRequired = errors.New("id required")

// ParseIDs parses positional ids. Commas separate ids inside one argument,
// so "1,2 3" yields [1 2 3]. Duplicates are dropped, order is kept.
func ParseIDs(args []string) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]bool)
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			id, err := strconv.ParseInt(strings.TrimPrefix(field, "#"), 10, 64)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid id: %s", field)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrIDRequired
	}
	return ids, nil
}

// ParseID parses exactly one id.
func ParseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}
	ids, err := ParseIDs(args)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("expected one id: %s", args[0])
	}
	return ids[0], nil
}
