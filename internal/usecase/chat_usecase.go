package usecase

import (
	"context"
	"net/http"
)

const (
	chatSystemPrompt = "You are a helpful assistant for BOOK4U. answer in 2-3 sentences max. be concise and friendly."

	ReplyEmptyMessage  = "Please say something!"
	ReplyFallback      = "I'm not sure."
	ReplyUpstreamError = "Error connecting to AI."
	ReplyRateLimited   = "Too many messages. Please slow down."
)

type ChatUsecase struct {
	completer ChatCompleter
}

// DI
func NewChatUsecase(completer ChatCompleter) *ChatUsecase {
	return &ChatUsecase{completer: completer}
}

// Reply はメッセージを言語モデルに渡して返答を返す
func (u *ChatUsecase) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", NewHTTPError(http.StatusBadRequest, ReplyEmptyMessage)
	}

	reply, err := u.completer.Ask(ctx, chatSystemPrompt, message)
	if err != nil {
		return "", WrapHTTPError(http.StatusInternalServerError, ReplyUpstreamError, err)
	}
	if reply == "" {
		return ReplyFallback, nil
	}
	return reply, nil
}
