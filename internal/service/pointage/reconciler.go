package pointage

import (
	"sort"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
)

// Reconcile merges the three input signals - persisted pointage records,
// approved absence requests and the active roster - into the derived view for
// one date. It is a pure function of its input: calling it twice with the
// same input yields the same result, and it never touches the repositories.
func Reconcile(in pointage.ReconcileInput) pointage.Reconciliation {
	day := in.Date.Format("2006-01-02")

	out := pointage.Reconciliation{
		Date:     day,
		Editable: make(map[string]pointage.EditableRecord, len(in.Roster)),
	}

	for _, u := range in.Roster {
		existing := existingFor(u.ID, in.Date, in.Existing)
		leaveInfo := leaveInfoFor(u.ID, in.Date, in.Absences, in.TieBreak)

		if leaveInfo != nil && leaveInfo.Type.IsFullDay() {
			rec := pointage.EditableRecord{
				UserID:      u.ID,
				Date:        day,
				StatutJour:  pointage.DayStatus(leaveInfo.Type),
				LeaveDriven: true,
			}
			endDate := leaveInfo.DateFin.Format("2006-01-02")
			rec.AbsenceEndDate = &endDate
			if existing != nil {
				id := existing.ID
				rec.ID = &id
				rec.Valider = existing.Valider
			}
			rec.FieldsDisabled = rec.DisabledFor(in.ActorRole)
			rec.SaveEnabled = rec.SaveEnabledFor(in.ActorRole)
			out.Editable[u.ID] = rec

			out.OnLeave = append(out.OnLeave, pointage.LeaveEntry{
				UserID:         u.ID,
				UserName:       u.FullName(),
				AbsenceType:    leaveInfo.Type,
				AbsenceMotif:   motifOrNA(leaveInfo.Motif),
				AbsenceEndDate: endDate,
				DepartementID:  u.DepartementID,
				SocieteID:      u.SocieteID,
			})
			continue
		}

		rec := pointage.EditableRecord{
			UserID:      u.ID,
			Date:        day,
			LeaveDriven: leaveInfo != nil,
		}
		if existing != nil {
			id := existing.ID
			rec.ID = &id
			rec.HeureEntree = deref(existing.HeureEntree)
			rec.HeureSortie = deref(existing.HeureSortie)
			rec.StatutJour = existing.StatutJour
			rec.OvertimeHours = existing.OvertimeHours
			rec.Valider = existing.Valider
		} else if leaveInfo != nil {
			// A non-blocking absence overlap seeds the status for display.
			rec.StatutJour = pointage.DayStatus(leaveInfo.Type)
		}
		if leaveInfo != nil {
			endDate := leaveInfo.DateFin.Format("2006-01-02")
			rec.AbsenceEndDate = &endDate
		}
		rec.FieldsDisabled = rec.DisabledFor(in.ActorRole)
		rec.SaveEnabled = rec.SaveEnabledFor(in.ActorRole)
		out.Editable[u.ID] = rec

		out.AvailableForEntry = append(out.AvailableForEntry, u)
	}

	return out
}

// existingFor returns the persisted record for (userID, date), matching on
// calendar day.
func existingFor(userID string, date time.Time, records []pointage.Pointage) *pointage.Pointage {
	for i := range records {
		if records[i].UserID == userID && sameDay(records[i].Date, date) {
			return &records[i]
		}
	}
	return nil
}

// leaveInfoFor picks the relevant approved absence for a user on a date.
// FirstMatch keeps input order; SicknessFirst ranks maladie over Congé over
// Autre absence, falling back to input order within a rank.
func leaveInfoFor(userID string, date time.Time, absences []absence.AbsenceRequest, policy pointage.TieBreakPolicy) *absence.AbsenceRequest {
	var best *absence.AbsenceRequest
	for i := range absences {
		r := &absences[i]
		if r.UserID != userID || !r.Statut.IsApproving() || !r.Covers(date) {
			continue
		}
		if policy != pointage.TieBreakSicknessFirst {
			return r
		}
		if best == nil || typeRank(r.Type) < typeRank(best.Type) {
			best = r
		}
	}
	return best
}

func typeRank(t absence.Type) int {
	switch t {
	case absence.TypeMaladie:
		return 0
	case absence.TypeConge:
		return 1
	case absence.TypeAutre:
		return 2
	}
	return 3
}

// SaveSet computes the save-all delta: records whose statutJour is not an
// absence tag AND that are either new or differ from the persisted original
// in status, times or overtime. Output is ordered by user id so the batch is
// deterministic.
func SaveSet(edited map[string]pointage.EditableRecord, persisted []pointage.Pointage, date time.Time) []pointage.Pointage {
	userIDs := make([]string, 0, len(edited))
	for id := range edited {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	var out []pointage.Pointage
	for _, userID := range userIDs {
		rec := edited[userID]
		if rec.StatutJour.IsFullDayAbsence() {
			continue
		}

		original := existingFor(userID, date, persisted)
		if original != nil && !changed(rec, original) {
			continue
		}

		out = append(out, rec.SavePayload())
	}
	return out
}

func changed(rec pointage.EditableRecord, original *pointage.Pointage) bool {
	return original.StatutJour != rec.StatutJour ||
		deref(original.HeureEntree) != rec.HeureEntree ||
		deref(original.HeureSortie) != rec.HeureSortie ||
		original.OvertimeHours != rec.OvertimeHours
}

// ValidationCandidates selects the ids bulk validation may touch: records not
// yet validated, with a non-empty statutJour and a persisted id.
func ValidationCandidates(records []pointage.Pointage) []string {
	var ids []string
	for _, p := range records {
		if !p.Valider && p.StatutJour != pointage.StatusEmpty && p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// InvalidationCandidates selects the ids bulk invalidation may touch: only
// records currently validated.
func InvalidationCandidates(records []pointage.Pointage) []string {
	var ids []string
	for _, p := range records {
		if p.Valider && p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func motifOrNA(motif *string) string {
	if motif == nil || *motif == "" {
		return "N/A"
	}
	return *motif
}
