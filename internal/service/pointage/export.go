package pointage

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/xuri/excelize/v2"
)

var statusLabels = map[pointage.DayStatus]string{
	pointage.StatusPresent: "Présent",
	pointage.StatusAbsent:  "Absent",
	pointage.StatusRetard:  "Retard",
}

func statusLabel(s pointage.DayStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ExportJournal implements pointage.PointageService. It renders the
// reconciled day sheet as an xlsx workbook: one sheet for attendance entry,
// one for employees on leave.
func (s *PointageServiceImpl) ExportJournal(ctx context.Context, filter pointage.JournalFilter) ([]byte, error) {
	journal, err := s.Journal(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const pointageSheet = "Pointages"
	if err := f.SetSheetName("Sheet1", pointageSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Employé", "Date", "Statut", "Heure d'entrée", "Heure de sortie", "Heures supplémentaires", "Validé"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(pointageSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	nameByID := make(map[string]string, len(journal.AvailableForEntry))
	for _, u := range journal.AvailableForEntry {
		nameByID[u.ID] = u.Name + " " + u.Prenom
	}

	row := 2
	for _, u := range sortedRoster(journal.AvailableForEntry) {
		rec := journal.Editable[u.ID]
		validLabel := "Non"
		if rec.Valider {
			validLabel = "Oui"
		}
		values := []interface{}{
			nameByID[u.ID],
			journal.Date,
			statusLabel(rec.StatutJour),
			rec.HeureEntree,
			rec.HeureSortie,
			rec.OvertimeHours,
			validLabel,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(pointageSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
		row++
	}

	if len(journal.OnLeave) > 0 {
		const absenceSheet = "Absences"
		if _, err := f.NewSheet(absenceSheet); err != nil {
			return nil, fmt.Errorf("failed to create absence sheet: %w", err)
		}

		absenceHeaders := []string{"Employé", "Type d'absence", "Motif", "Fin d'absence"}
		for i, h := range absenceHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(absenceSheet, cell, h); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
		}

		for i, entry := range journal.OnLeave {
			values := []interface{}{
				entry.UserName,
				string(entry.AbsenceType),
				entry.AbsenceMotif,
				entry.AbsenceEndDate,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				if err := f.SetCellValue(absenceSheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedRoster(roster []pointage.RosterUser) []pointage.RosterUser {
	out := make([]pointage.RosterUser, len(roster))
	copy(out, roster)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Prenom < out[j].Prenom
	})
	return out
}
