package usersettings

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/howzue/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    domain.Settings
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT theme, enable_ai_insights FROM user_settings WHERE identity = \$1`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"theme", "enable_ai_insights"}).AddRow("dark", false))
			},
			want: domain.Settings{Theme: domain.ThemeDark, EnableAIInsights: false},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).
					WithArgs("alice").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "storage failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).
					WithArgs("alice").
					WillReturnError(errors.New("dial tcp: refused"))
			},
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			tt.setup(mock)

			got, err := New(mock).Get(context.Background(), "alice")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("Get: %v", err)
				}
				if got != tt.want {
					t.Errorf("Get = %+v, want %+v", got, tt.want)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Upsert(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO user_settings \(identity,theme,enable_ai_insights,updated_at\) VALUES \(\$1,\$2,\$3,now\(\)\) ON CONFLICT \(identity\) DO UPDATE`).
		WithArgs("alice", "light", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := New(mock).Upsert(context.Background(), "alice", domain.Settings{Theme: domain.ThemeLight, EnableAIInsights: true})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
