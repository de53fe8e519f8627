package pointage

import (
	"testing"

	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SaveRequest
		wantErr []string
	}{
		{
			name: "valid present entry",
			req: SaveRequest{
				UserID:      "e1",
				Date:        "2024-06-10",
				HeureEntree: "08:00",
				HeureSortie: "17:00",
				StatutJour:  StatusPresent,
			},
		},
		{
			name: "valid absent entry without times",
			req: SaveRequest{
				UserID:     "e1",
				Date:       "2024-06-10",
				StatutJour: StatusAbsent,
			},
		},
		{
			name: "missing user and bad date",
			req: SaveRequest{
				Date:       "10/06/2024",
				StatutJour: StatusPresent,
			},
			wantErr: []string{"user_id", "date"},
		},
		{
			name: "absence tag is not a hand-entered status",
			req: SaveRequest{
				UserID:     "e1",
				Date:       "2024-06-10",
				StatutJour: DayStatus("Congé"),
			},
			wantErr: []string{"statutJour"},
		},
		{
			name: "malformed clock time",
			req: SaveRequest{
				UserID:      "e1",
				Date:        "2024-06-10",
				HeureEntree: "25:00",
				StatutJour:  StatusPresent,
			},
			wantErr: []string{"heureEntree"},
		},
		{
			name: "negative overtime",
			req: SaveRequest{
				UserID:        "e1",
				Date:          "2024-06-10",
				StatutJour:    StatusPresent,
				OvertimeHours: -1,
			},
			wantErr: []string{"overtimeHours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			fields := errs.ToMap()
			for _, field := range tt.wantErr {
				assert.Contains(t, fields, field)
			}
		})
	}
}

func TestUpdateRequestRequiresID(t *testing.T) {
	req := UpdateRequest{
		UserID:     "e1",
		Date:       "2024-06-10",
		StatutJour: StatusPresent,
	}

	err := req.Validate()
	require.Error(t, err)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "id")
}

func TestJournalFilterValidate(t *testing.T) {
	valid := JournalFilter{Date: "2024-06-10"}
	assert.NoError(t, valid.Validate())

	missing := JournalFilter{}
	assert.Error(t, missing.Validate())
}

func TestDayStatusPredicates(t *testing.T) {
	assert.True(t, StatusPresent.IsEntryStatus())
	assert.True(t, StatusAbsent.IsEntryStatus())
	assert.True(t, StatusRetard.IsEntryStatus())
	assert.False(t, StatusEmpty.IsEntryStatus())
	assert.False(t, DayStatus("Congé").IsEntryStatus())

	assert.True(t, DayStatus("Congé").IsFullDayAbsence())
	assert.True(t, DayStatus("maladie").IsFullDayAbsence())
	assert.True(t, DayStatus("Autre absence").IsFullDayAbsence())
	assert.False(t, StatusPresent.IsFullDayAbsence())
	assert.False(t, StatusAbsent.IsFullDayAbsence())
}
