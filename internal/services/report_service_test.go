package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

func TestExportYearCSV(t *testing.T) {
	f := newLedgerFixture(t, nil)
	ctx := context.Background()
	reports := NewReportService(f.ledger, repositories.NewStudentRepository(f.db))

	today := f.clock.now
	f.clock.now = today.AddDate(0, 0, -400)
	_, err := f.ledger.RecordIntake(ctx, f.self, f.student.ID, adHoc("too old", 999, 1, 1, 1))
	require.NoError(t, err)

	f.clock.now = time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC)
	_, err = f.ledger.RecordIntake(ctx, f.self, f.student.ID, adHoc("Porridge, with milk", 210.5, 7, 4, 36))
	require.NoError(t, err)

	f.clock.now = today
	_, err = f.ledger.RecordIntake(ctx, f.self, f.student.ID, adHoc("Apple", 52, 0.3, 0.2, 14))
	require.NoError(t, err)

	export, err := reports.ExportYearCSV(ctx, f.parentActor(), f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, "kid1_nutrition_2024-03-10_to_2025-03-10.csv", export.Filename)

	content := string(export.Content)
	require.True(t, strings.HasPrefix(content, "\ufeff"))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Time", "Dish", "Kcal", "Protein", "Fat", "Carbs"}, rows[0])
	assert.Equal(t, []string{"2025-03-01", "08:15:00", "Porridge, with milk", "210.5", "7", "4", "36"}, rows[1])
	assert.Equal(t, "Apple", rows[2][2])
	assert.Equal(t, []string{"Total", "", "", "262.5", "7.3", "4.2", "50"}, rows[3])
}

func TestExportYearCSV_RequiresAccess(t *testing.T) {
	f := newLedgerFixture(t, nil)
	reports := NewReportService(f.ledger, repositories.NewStudentRepository(f.db))

	_, err := reports.ExportYearCSV(context.Background(), Actor{UserID: uuid.New(), Role: RoleParent}, f.student.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
