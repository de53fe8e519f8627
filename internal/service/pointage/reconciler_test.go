package pointage

import (
	"testing"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string { return &s }

func rosterUser(id, name, prenom string) user.User {
	return user.User{
		ID:     id,
		Name:   name,
		Prenom: prenom,
		Role:   user.RoleEmploye,
		Statut: user.StatusActif,
	}
}

func TestReconcileApprovedLeaveExcludesFromEntry(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	in := pointage.ReconcileInput{
		Date:   date,
		Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences: []absence.AbsenceRequest{
			{
				ID:        "a1",
				UserID:    "e1",
				Type:      absence.TypeConge,
				DateDebut: mustDate(t, "2024-06-05"),
				DateFin:   mustDate(t, "2024-06-12"),
				Statut:    absence.StatusValide,
			},
		},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	out := Reconcile(in)

	require.Len(t, out.OnLeave, 1)
	assert.Equal(t, "e1", out.OnLeave[0].UserID)
	assert.Equal(t, absence.TypeConge, out.OnLeave[0].AbsenceType)
	assert.Equal(t, "2024-06-12", out.OnLeave[0].AbsenceEndDate)
	assert.Equal(t, "N/A", out.OnLeave[0].AbsenceMotif)
	assert.Empty(t, out.AvailableForEntry)

	rec, ok := out.Editable["e1"]
	require.True(t, ok)
	assert.True(t, rec.LeaveDriven)
	assert.True(t, rec.FieldsDisabled)
	assert.False(t, rec.SaveEnabled)
	assert.Equal(t, pointage.DayStatus(absence.TypeConge), rec.StatutJour)
	require.NotNil(t, rec.AbsenceEndDate)
	assert.Equal(t, "2024-06-12", *rec.AbsenceEndDate)
}

func TestReconcileLeaveOutsideIntervalDoesNotBlock(t *testing.T) {
	date := mustDate(t, "2024-06-20")

	in := pointage.ReconcileInput{
		Date:   date,
		Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences: []absence.AbsenceRequest{
			{
				ID:        "a1",
				UserID:    "e1",
				Type:      absence.TypeConge,
				DateDebut: mustDate(t, "2024-06-05"),
				DateFin:   mustDate(t, "2024-06-12"),
				Statut:    absence.StatusValide,
			},
		},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	out := Reconcile(in)

	assert.Empty(t, out.OnLeave)
	require.Len(t, out.AvailableForEntry, 1)
	assert.False(t, out.Editable["e1"].LeaveDriven)
}

func TestReconcilePendingRequestDoesNotBlock(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	in := pointage.ReconcileInput{
		Date:   date,
		Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences: []absence.AbsenceRequest{
			{
				ID:        "a1",
				UserID:    "e1",
				Type:      absence.TypeConge,
				DateDebut: mustDate(t, "2024-06-05"),
				DateFin:   mustDate(t, "2024-06-12"),
				Statut:    absence.StatusEnAttente,
			},
		},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	out := Reconcile(in)

	assert.Empty(t, out.OnLeave)
	require.Len(t, out.AvailableForEntry, 1)
	assert.False(t, out.Editable["e1"].LeaveDriven)
}

func TestReconcileBlankRecordWhenNothingExists(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	in := pointage.ReconcileInput{
		Date:      date,
		Roster:    []user.User{rosterUser("e1", "Durand", "Alice")},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	out := Reconcile(in)

	rec, ok := out.Editable["e1"]
	require.True(t, ok)
	assert.Nil(t, rec.ID)
	assert.Equal(t, "", rec.HeureEntree)
	assert.Equal(t, "", rec.HeureSortie)
	assert.Equal(t, pointage.StatusEmpty, rec.StatutJour)
	assert.Equal(t, 0, rec.OvertimeHours)
	assert.False(t, rec.Valider)
	assert.False(t, rec.FieldsDisabled)
	// Save stays off until a statutJour is chosen.
	assert.False(t, rec.SaveEnabled)
	require.Len(t, out.AvailableForEntry, 1)
}

func TestReconcileExistingRecordSeedsFields(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	in := pointage.ReconcileInput{
		Date:   date,
		Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
		Existing: []pointage.Pointage{
			{
				ID:            "77",
				UserID:        "e1",
				Date:          date,
				HeureEntree:   strPtr("08:00"),
				HeureSortie:   strPtr("17:00"),
				StatutJour:    pointage.StatusPresent,
				OvertimeHours: 2,
			},
		},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	out := Reconcile(in)

	rec := out.Editable["e1"]
	require.NotNil(t, rec.ID)
	assert.Equal(t, "77", *rec.ID)
	assert.Equal(t, "08:00", rec.HeureEntree)
	assert.Equal(t, "17:00", rec.HeureSortie)
	assert.Equal(t, pointage.StatusPresent, rec.StatutJour)
	assert.Equal(t, 2, rec.OvertimeHours)
	assert.False(t, rec.FieldsDisabled)
	assert.True(t, rec.SaveEnabled)
}

func TestReconcileEmployeLockedOutOfSavedRecord(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	existing := []pointage.Pointage{
		{
			ID:         "77",
			UserID:     "e1",
			Date:       date,
			StatutJour: pointage.StatusPresent,
		},
	}

	employeOut := Reconcile(pointage.ReconcileInput{
		Date:      date,
		Roster:    []user.User{rosterUser("e1", "Durand", "Alice")},
		Existing:  existing,
		ActorRole: user.RoleEmploye,
		TieBreak:  pointage.TieBreakFirstMatch,
	})
	chefOut := Reconcile(pointage.ReconcileInput{
		Date:      date,
		Roster:    []user.User{rosterUser("e1", "Durand", "Alice")},
		Existing:  existing,
		ActorRole: user.RoleChefDep,
		TieBreak:  pointage.TieBreakFirstMatch,
	})

	assert.True(t, employeOut.Editable["e1"].FieldsDisabled)
	assert.False(t, employeOut.Editable["e1"].SaveEnabled)
	assert.False(t, chefOut.Editable["e1"].FieldsDisabled)
	assert.True(t, chefOut.Editable["e1"].SaveEnabled)
}

func TestReconcileValidatedRecordFrozenForEveryRole(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	for _, role := range []user.Role{user.RoleEmploye, user.RoleChefDep, user.RoleRH, user.RoleChefProjet} {
		out := Reconcile(pointage.ReconcileInput{
			Date:   date,
			Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
			Existing: []pointage.Pointage{
				{
					ID:         "77",
					UserID:     "e1",
					Date:       date,
					StatutJour: pointage.StatusPresent,
					Valider:    true,
				},
			},
			ActorRole: role,
			TieBreak:  pointage.TieBreakFirstMatch,
		})

		assert.True(t, out.Editable["e1"].FieldsDisabled, "role %s", role)
		assert.False(t, out.Editable["e1"].SaveEnabled, "role %s", role)
	}
}

func TestReconcileSoftOverlapKeepsUserAvailable(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	out := Reconcile(pointage.ReconcileInput{
		Date:   date,
		Roster: []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences: []absence.AbsenceRequest{
			{
				ID:        "a1",
				UserID:    "e1",
				Type:      absence.Type("demi-journée"),
				DateDebut: date,
				DateFin:   date,
				Statut:    absence.StatusApprouve,
			},
		},
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	})

	// Not a full-day category: the user keeps an entry row but the record is
	// flagged and frozen.
	assert.Empty(t, out.OnLeave)
	require.Len(t, out.AvailableForEntry, 1)
	rec := out.Editable["e1"]
	assert.True(t, rec.LeaveDriven)
	assert.True(t, rec.FieldsDisabled)
	assert.Equal(t, pointage.DayStatus("demi-journée"), rec.StatutJour)
}

func TestReconcileTieBreakPolicies(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	absences := []absence.AbsenceRequest{
		{
			ID:        "a1",
			UserID:    "e1",
			Type:      absence.TypeConge,
			DateDebut: date,
			DateFin:   mustDate(t, "2024-06-11"),
			Statut:    absence.StatusValide,
		},
		{
			ID:        "a2",
			UserID:    "e1",
			Type:      absence.TypeMaladie,
			DateDebut: date,
			DateFin:   mustDate(t, "2024-06-15"),
			Statut:    absence.StatusApprouve,
		},
	}

	firstMatch := Reconcile(pointage.ReconcileInput{
		Date:      date,
		Roster:    []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences:  absences,
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakFirstMatch,
	})
	sicknessFirst := Reconcile(pointage.ReconcileInput{
		Date:      date,
		Roster:    []user.User{rosterUser("e1", "Durand", "Alice")},
		Absences:  absences,
		ActorRole: user.RoleRH,
		TieBreak:  pointage.TieBreakSicknessFirst,
	})

	require.Len(t, firstMatch.OnLeave, 1)
	assert.Equal(t, absence.TypeConge, firstMatch.OnLeave[0].AbsenceType)
	assert.Equal(t, "2024-06-11", firstMatch.OnLeave[0].AbsenceEndDate)

	require.Len(t, sicknessFirst.OnLeave, 1)
	assert.Equal(t, absence.TypeMaladie, sicknessFirst.OnLeave[0].AbsenceType)
	assert.Equal(t, "2024-06-15", sicknessFirst.OnLeave[0].AbsenceEndDate)
}

func TestReconcileIsIdempotent(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	in := pointage.ReconcileInput{
		Date: date,
		Roster: []user.User{
			rosterUser("e1", "Durand", "Alice"),
			rosterUser("e2", "Martin", "Bruno"),
		},
		Existing: []pointage.Pointage{
			{ID: "1", UserID: "e1", Date: date, StatutJour: pointage.StatusPresent},
		},
		Absences: []absence.AbsenceRequest{
			{
				ID:        "a1",
				UserID:    "e2",
				Type:      absence.TypeMaladie,
				DateDebut: date,
				DateFin:   date,
				Statut:    absence.StatusValide,
			},
		},
		ActorRole: user.RoleChefDep,
		TieBreak:  pointage.TieBreakFirstMatch,
	}

	first := Reconcile(in)
	second := Reconcile(in)

	assert.Equal(t, first, second)
}

func TestSavePayloadNormalizesAbsent(t *testing.T) {
	id := "77"
	rec := pointage.EditableRecord{
		ID:            &id,
		UserID:        "e1",
		Date:          "2024-06-10",
		HeureEntree:   "08:00",
		HeureSortie:   "17:00",
		StatutJour:    pointage.StatusAbsent,
		OvertimeHours: 3,
	}

	payload := rec.SavePayload()

	assert.Equal(t, "77", payload.ID)
	assert.Equal(t, pointage.StatusAbsent, payload.StatutJour)
	assert.Nil(t, payload.HeureEntree)
	assert.Nil(t, payload.HeureSortie)
	assert.Equal(t, 0, payload.OvertimeHours)
}

func TestSavePayloadKeepsTimesForPresent(t *testing.T) {
	rec := pointage.EditableRecord{
		UserID:        "e1",
		Date:          "2024-06-10",
		HeureEntree:   "08:00",
		HeureSortie:   "17:00",
		StatutJour:    pointage.StatusPresent,
		OvertimeHours: 2,
	}

	payload := rec.SavePayload()

	require.NotNil(t, payload.HeureEntree)
	require.NotNil(t, payload.HeureSortie)
	assert.Equal(t, "08:00", *payload.HeureEntree)
	assert.Equal(t, "17:00", *payload.HeureSortie)
	assert.Equal(t, 2, payload.OvertimeHours)
}

func TestApplyEditMergesOnlySetFields(t *testing.T) {
	rec := pointage.EditableRecord{
		UserID:      "e1",
		HeureEntree: "08:00",
		StatutJour:  pointage.StatusPresent,
	}

	status := pointage.StatusRetard
	merged := rec.ApplyEdit(pointage.FieldEdit{
		UserID:      "e1",
		HeureSortie: strPtr("17:30"),
		StatutJour:  &status,
	})

	assert.Equal(t, "08:00", merged.HeureEntree)
	assert.Equal(t, "17:30", merged.HeureSortie)
	assert.Equal(t, pointage.StatusRetard, merged.StatutJour)
	// Receiver untouched.
	assert.Equal(t, "", rec.HeureSortie)
}

func TestSaveSetExcludesAbsenceTaggedRecords(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	edited := map[string]pointage.EditableRecord{
		"e1": {
			UserID:     "e1",
			Date:       "2024-06-10",
			StatutJour: pointage.StatusPresent,
		},
		"e2": {
			UserID:     "e2",
			Date:       "2024-06-10",
			StatutJour: pointage.DayStatus(absence.TypeMaladie),
		},
	}

	delta := SaveSet(edited, nil, date)

	require.Len(t, delta, 1)
	assert.Equal(t, "e1", delta[0].UserID)
}

func TestSaveSetSkipsUnchangedRecords(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	persisted := []pointage.Pointage{
		{
			ID:          "1",
			UserID:      "e1",
			Date:        date,
			HeureEntree: strPtr("08:00"),
			StatutJour:  pointage.StatusPresent,
		},
		{
			ID:          "2",
			UserID:      "e2",
			Date:        date,
			HeureEntree: strPtr("09:00"),
			StatutJour:  pointage.StatusRetard,
		},
	}

	id1, id2 := "1", "2"
	edited := map[string]pointage.EditableRecord{
		"e1": {
			ID:          &id1,
			UserID:      "e1",
			Date:        "2024-06-10",
			HeureEntree: "08:00",
			StatutJour:  pointage.StatusPresent,
		},
		"e2": {
			ID:          &id2,
			UserID:      "e2",
			Date:        "2024-06-10",
			HeureEntree: "09:15",
			StatutJour:  pointage.StatusRetard,
		},
	}

	delta := SaveSet(edited, persisted, date)

	require.Len(t, delta, 1)
	assert.Equal(t, "2", delta[0].ID)
	require.NotNil(t, delta[0].HeureEntree)
	assert.Equal(t, "09:15", *delta[0].HeureEntree)
}

func TestSaveSetIncludesNewRecordsWithStatus(t *testing.T) {
	date := mustDate(t, "2024-06-10")

	edited := map[string]pointage.EditableRecord{
		"e2": {
			UserID:     "e2",
			Date:       "2024-06-10",
			StatutJour: pointage.StatusAbsent,
		},
		"e1": {
			UserID:      "e1",
			Date:        "2024-06-10",
			HeureEntree: "08:00",
			StatutJour:  pointage.StatusPresent,
		},
	}

	delta := SaveSet(edited, nil, date)

	// Ordered by user id for a deterministic batch.
	require.Len(t, delta, 2)
	assert.Equal(t, "e1", delta[0].UserID)
	assert.Equal(t, "e2", delta[1].UserID)
	assert.Nil(t, delta[1].HeureEntree)
}

func TestValidationCandidates(t *testing.T) {
	records := []pointage.Pointage{
		{ID: "1", StatutJour: pointage.StatusPresent, Valider: false},
		{ID: "2", StatutJour: pointage.StatusPresent, Valider: true},
		{ID: "3", StatutJour: pointage.StatusEmpty, Valider: false},
		{ID: "", StatutJour: pointage.StatusPresent, Valider: false},
	}

	assert.Equal(t, []string{"1"}, ValidationCandidates(records))
}

func TestInvalidationCandidates(t *testing.T) {
	records := []pointage.Pointage{
		{ID: "1", Valider: false},
		{ID: "2", Valider: true},
		{ID: "3", Valider: true},
	}

	assert.Equal(t, []string{"2", "3"}, InvalidationCandidates(records))
}
