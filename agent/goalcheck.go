package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	answerYes = "yes"
	answerNo  = "no"
)

// continuePrompt follows a "no" verdict when the transcript is carried
// forward, so the next tool-offering request ends on a user turn.
const continuePrompt = "The goal has not been achieved yet. Continue working toward it with the available tools."

// goalCheckPrompt builds the user message of the goal check. The snapshot
// is embedded as indented JSON.
func goalCheckPrompt(goal string, snapshot any) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("agent: encode snapshot: %w", err)
	}

	var b strings.Builder
	b.WriteString("Decide whether the following goal has been achieved.\n\n")
	b.WriteString("Goal:\n")
	b.WriteString(goal)
	b.WriteString("\n\nCurrent state:\n")
	b.Write(data)
	b.WriteString("\n\nRespond with exactly one JSON object and nothing else: ")
	b.WriteString(`{"answer": "yes"} if the goal has been achieved, or {"answer": "no"} if it has not.`)
	return b.String(), nil
}

// parseAnswer enforces the goal-check contract: the content must be exactly
// one JSON object whose only key is "answer", valued "yes" or "no".
func parseAnswer(content string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(content)))

	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return "", fmt.Errorf("reply is not a JSON object: %v", err)
	}
	if obj == nil {
		return "", errors.New("reply is not a JSON object: null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("reply has trailing data after the JSON object")
	}

	raw, ok := obj["answer"]
	if !ok {
		return "", errors.New(`reply has no "answer" key`)
	}
	if len(obj) != 1 {
		return "", fmt.Errorf(`reply must contain only the "answer" key, got %d keys`, len(obj))
	}

	var answer string
	if err := json.Unmarshal(raw, &answer); err != nil {
		return "", fmt.Errorf(`"answer" must be a string, got %s`, raw)
	}
	switch answer {
	case answerYes, answerNo:
		return answer, nil
	}
	return "", fmt.Errorf(`"answer" must be "yes" or "no", got %q`, answer)
}
