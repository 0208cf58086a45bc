package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptLine asks a question and returns the trimmed answer. End of input
// counts as an empty answer. Successive prompts must share one reader.
func promptLine(in *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	response, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// confirm asks a yes/no question. Only "y" or "yes" confirm.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	answer, err := promptLine(in, out, question+" [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
