package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/models"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
			return "", err
		}
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; anything but y/yes is a no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ParseDurationChoice maps the menu choices 1d, 1w, 1m and 3m (or their
// spelled-out forms) to a window length. Empty input yields def.
func ParseDurationChoice(s string, def time.Duration) (time.Duration, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "":
		return def, nil
	case "1d", "1 day", "day":
		return models.OneDay, nil
	case "1w", "1 week", "week":
		return models.OneWeek, nil
	case "1m", "1 month", "month":
		return models.OneMonth, nil
	case "3m", "3 months":
		return models.ThreeMonths, nil
	}
	return 0, fmt.Errorf("%w: unknown duration %q, use 1d, 1w, 1m or 3m", common.ErrorValidation, s)
}
