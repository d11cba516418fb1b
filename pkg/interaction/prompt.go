// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// PromptYesNo asks a yes/no question and returns true/false. Falls back to the
// default if the answer is unrecognisable.
func PromptYesNo(prompt string, defaultYes bool) bool {
	defPrompt := "Y/n"
	if !defaultYes {
		defPrompt = "y/N"
	}
	fmt.Printf("%s [%s]: ", prompt, defPrompt)

	reader := bufio.NewReader(Reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		zap.L().Warn("Failed to read yes/no input", zap.Error(err))
		return defaultYes
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		return answer
	}
	return defaultYes
}

// PromptToContinue blocks until the operator presses Enter. Used for manual
// gates where the fix happens outside this process (e.g. creating a DNS
// record) and only the operator knows when it is done.
func PromptToContinue(message string) {
	fmt.Println(message)
	fmt.Print("Press Enter to continue... ")
	reader := bufio.NewReader(Reader)
	line, _ := reader.ReadString('\n')
	_ = strings.TrimSpace(line)
}
