package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidyops/workmaid/constants/lipgloss"
)

// ConfirmPrompt asks the user to confirm a destructive action. Anything other
// than an explicit yes declines.
func ConfirmPrompt(message string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.Yellow.Render(fmt.Sprintf("%s [y/N]: ", message)))

	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading confirmation: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
