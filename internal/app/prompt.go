package app

import (
	"context"

	"github.com/llehouerou/localplay/internal/catalog"
)

// PromptRequest is a pending question. Answer must be called exactly once.
type PromptRequest struct {
	Question string
	answer   chan<- bool
}

// Answer delivers the user's reply to the waiting asker.
func (r PromptRequest) Answer(yes bool) {
	r.answer <- yes
}

// NewAsker returns a catalog.Asker that routes its questions to the TUI
// through the returned channel. The asker blocks until the question is
// answered or ctx is done.
func NewAsker() (catalog.Asker, <-chan PromptRequest) {
	requests := make(chan PromptRequest)
	ask := func(ctx context.Context, question string) bool {
		answer := make(chan bool, 1)
		select {
		case requests <- PromptRequest{Question: question, answer: answer}:
		case <-ctx.Done():
			return false
		}
		select {
		case yes := <-answer:
			return yes
		case <-ctx.Done():
			return false
		}
	}
	return ask, requests
}
