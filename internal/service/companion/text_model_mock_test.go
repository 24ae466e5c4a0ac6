package companion

import (
	"context"
	"sync"

	"github.com/heartmarshall/howzue/internal/domain"
)

var _ textModel = &textModelMock{}

type textModelMock struct {
	CompleteFunc func(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)

	calls struct {
		Complete []struct {
			Ctx      context.Context
			System   string
			Messages []domain.ChatMessage
		}
	}
	lockComplete sync.RWMutex
}

func (mock *textModelMock) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	if mock.CompleteFunc == nil {
		panic("textModelMock.CompleteFunc: method is nil but textModel.Complete was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		System   string
		Messages []domain.ChatMessage
	}{Ctx: ctx, System: system, Messages: messages}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, messages)
}

func (mock *textModelMock) CompleteCalls() []struct {
	Ctx      context.Context
	System   string
	Messages []domain.ChatMessage
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
