package settings

import (
	"context"
	"sync"

	"github.com/heartmarshall/howzue/internal/domain"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	LoadSettingsFunc func(ctx context.Context, id domain.Identity) (domain.Settings, error)
	SaveSettingsFunc func(ctx context.Context, id domain.Identity, s domain.Settings) error

	calls struct {
		LoadSettings []struct {
			Ctx context.Context
			ID  domain.Identity
		}
		SaveSettings []struct {
			Ctx context.Context
			ID  domain.Identity
			S   domain.Settings
		}
	}
	lockLoadSettings sync.RWMutex
	lockSaveSettings sync.RWMutex
}

func (mock *settingsRepoMock) LoadSettings(ctx context.Context, id domain.Identity) (domain.Settings, error) {
	if mock.LoadSettingsFunc == nil {
		panic("settingsRepoMock.LoadSettingsFunc: method is nil but settingsRepo.LoadSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.Identity
	}{Ctx: ctx, ID: id}
	mock.lockLoadSettings.Lock()
	mock.calls.LoadSettings = append(mock.calls.LoadSettings, callInfo)
	mock.lockLoadSettings.Unlock()
	return mock.LoadSettingsFunc(ctx, id)
}

func (mock *settingsRepoMock) LoadSettingsCalls() []struct {
	Ctx context.Context
	ID  domain.Identity
} {
	mock.lockLoadSettings.RLock()
	calls := mock.calls.LoadSettings
	mock.lockLoadSettings.RUnlock()
	return calls
}

func (mock *settingsRepoMock) SaveSettings(ctx context.Context, id domain.Identity, s domain.Settings) error {
	if mock.SaveSettingsFunc == nil {
		panic("settingsRepoMock.SaveSettingsFunc: method is nil but settingsRepo.SaveSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.Identity
		S   domain.Settings
	}{Ctx: ctx, ID: id, S: s}
	mock.lockSaveSettings.Lock()
	mock.calls.SaveSettings = append(mock.calls.SaveSettings, callInfo)
	mock.lockSaveSettings.Unlock()
	return mock.SaveSettingsFunc(ctx, id, s)
}

func (mock *settingsRepoMock) SaveSettingsCalls() []struct {
	Ctx context.Context
	ID  domain.Identity
	S   domain.Settings
} {
	mock.lockSaveSettings.RLock()
	calls := mock.calls.SaveSettings
	mock.lockSaveSettings.RUnlock()
	return calls
}
